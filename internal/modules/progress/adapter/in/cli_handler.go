package in

import (
	"context"

	"apnea/internal/modules/progress/dto"
	progressin "apnea/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context, profileID string) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx, dto.StatsInput{ProfileID: profileID})
}
