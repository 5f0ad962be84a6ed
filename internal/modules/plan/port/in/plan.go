package in

import (
	"context"

	"apnea/internal/modules/plan/dto"
)

type Usecase interface {
	Preview(ctx context.Context, input dto.PreviewInput) (dto.PlanOutput, error)
}
