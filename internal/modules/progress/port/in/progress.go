package in

import (
	"context"

	"apnea/internal/modules/progress/dto"
)

type Usecase interface {
	Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error)
}
