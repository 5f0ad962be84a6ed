package in

import (
	"context"

	"apnea/internal/modules/session/dto"
	sessionin "apnea/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Prepare treats a non-positive maxHold as "use the profile's".
func (h CLIHandler) Prepare(ctx context.Context, sessionType, date string, maxHold int) (dto.PrepareOutput, error) {
	input := dto.PrepareInput{SessionType: sessionType, Date: date}
	if maxHold > 0 {
		input.MaxHold = &maxHold
	}
	return h.usecase.Prepare(ctx, input)
}

func (h CLIHandler) Finish(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error) {
	return h.usecase.Finish(ctx, input)
}

func (h CLIHandler) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	return h.usecase.Run(ctx, input)
}

func (h CLIHandler) Journal(ctx context.Context, limit int) ([]dto.JournalOutput, error) {
	return h.usecase.Journal(ctx, dto.JournalInput{Limit: limit})
}
