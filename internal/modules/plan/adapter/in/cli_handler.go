package in

import (
	"context"

	"apnea/internal/modules/plan/dto"
	planin "apnea/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Preview builds the phase list for sessionType. maxHold <= 0 uses the
// profile's current value.
func (h CLIHandler) Preview(ctx context.Context, sessionType string, maxHold int) (dto.PlanOutput, error) {
	input := dto.PreviewInput{SessionType: sessionType}
	if maxHold > 0 {
		input.MaxHold = &maxHold
	}
	return h.usecase.Preview(ctx, input)
}
