package service

import (
	"context"
	"fmt"

	"apnea/internal/modules/plan/domain"
	planout "apnea/internal/modules/plan/port/out"
	applog "apnea/internal/platform/log"
)

type PlanService struct {
	templates planout.TemplateSource
	profiles  planout.ProfileSource
	opts      domain.Options
}

func NewPlanService(templates planout.TemplateSource, profiles planout.ProfileSource, opts domain.Options) *PlanService {
	return &PlanService{templates: templates, profiles: profiles, opts: opts}
}

// Build resolves sessionType against the profile's custom sessions first and
// the template catalog second. Without a max hold the plan is empty, which the
// runtime refuses to start.
func (s *PlanService) Build(ctx context.Context, sessionType string, maxHoldOverride *int) (domain.Plan, bool, error) {
	maxHold, known, err := s.maxHold(ctx, maxHoldOverride)
	if err != nil {
		return domain.Plan{}, false, err
	}
	logger := applog.WithComponent("plan")

	def, custom, err := s.profiles.CustomSession(ctx, sessionType)
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("lookup custom session: %w", err)
	}
	if custom {
		plan := domain.Plan{SessionType: def.Name, Custom: true, MaxHold: maxHold}
		if !known {
			return plan, true, nil
		}
		phases, err := domain.Resolve(def, maxHold)
		if err != nil {
			return domain.Plan{}, false, err
		}
		plan.Phases = phases
		logger.Debug().Str("session_type", def.Name).Int("phases", len(phases)).Msg("resolved custom session")
		return plan, false, nil
	}

	name, tpl, err := s.templates.Template(ctx, sessionType)
	if err != nil {
		return domain.Plan{}, false, err
	}
	plan := domain.Plan{SessionType: name, MaxHold: maxHold}
	if !known {
		return plan, true, nil
	}
	phases, err := domain.Generate(name, tpl, maxHold, s.opts)
	if err != nil {
		return domain.Plan{}, false, err
	}
	plan.Phases = phases
	logger.Debug().Str("session_type", name).Int("phases", len(phases)).Int("max_hold", maxHold).Msg("generated session")
	return plan, false, nil
}

func (s *PlanService) maxHold(ctx context.Context, override *int) (int, bool, error) {
	if override != nil {
		return *override, *override > 0, nil
	}
	seconds, ok, err := s.profiles.CurrentMaxHold(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read max hold: %w", err)
	}
	return seconds, ok && seconds > 0, nil
}
