package usecase

import (
	"context"

	"apnea/internal/modules/progress/dto"
	progressin "apnea/internal/modules/progress/port/in"
	"apnea/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error) {
	name, stats, err := i.svc.Stats(ctx, input.ProfileID)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{Profile: name, Stats: stats}, nil
}
