package out

import (
	"context"

	plan "apnea/internal/modules/plan/domain"
	plandto "apnea/internal/modules/plan/dto"
	planin "apnea/internal/modules/plan/port/in"
	sessionout "apnea/internal/modules/session/port/out"
)

type PlanSource struct {
	plans planin.Usecase
}

func NewPlanSource(plans planin.Usecase) sessionout.PlanSource {
	return PlanSource{plans: plans}
}

func (s PlanSource) Build(ctx context.Context, sessionType string, maxHold *int) (plan.Plan, bool, error) {
	out, err := s.plans.Preview(ctx, plandto.PreviewInput{SessionType: sessionType, MaxHold: maxHold})
	if err != nil {
		return plan.Plan{}, false, err
	}
	return out.Plan, out.MaxHoldMissing, nil
}
