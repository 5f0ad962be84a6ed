package usecase

import (
	"context"

	"apnea/internal/modules/plan/dto"
	planin "apnea/internal/modules/plan/port/in"
	"apnea/internal/modules/plan/service"
)

type Interactor struct {
	svc *service.PlanService
}

func NewInteractor(svc *service.PlanService) planin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Preview(ctx context.Context, input dto.PreviewInput) (dto.PlanOutput, error) {
	plan, missing, err := i.svc.Build(ctx, input.SessionType, input.MaxHold)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return dto.PlanOutput{
		Plan:           plan,
		MaxHoldMissing: missing,
		TotalSeconds:   plan.TotalSeconds(),
		Indefinite:     plan.IndefiniteCount(),
	}, nil
}
