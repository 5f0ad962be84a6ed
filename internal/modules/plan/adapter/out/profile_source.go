package out

import (
	"context"
	"errors"

	plan "apnea/internal/modules/plan/domain"
	planout "apnea/internal/modules/plan/port/out"
	profilein "apnea/internal/modules/profile/port/in"
	apperrors "apnea/internal/platform/errors"
)

// ProfileSource reads the current profile's max hold and custom sessions.
type ProfileSource struct {
	profiles profilein.Usecase
}

func NewProfileSource(profiles profilein.Usecase) planout.ProfileSource {
	return &ProfileSource{profiles: profiles}
}

func (s *ProfileSource) CurrentMaxHold(ctx context.Context) (int, bool, error) {
	out, err := s.profiles.Current(ctx)
	if err != nil {
		return 0, false, err
	}
	return out.MaxHold, out.HasMaxHold, nil
}

func (s *ProfileSource) CustomSession(ctx context.Context, name string) (plan.CustomSessionDefinition, bool, error) {
	out, err := s.profiles.GetCustomSession(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return plan.CustomSessionDefinition{}, false, nil
	}
	if err != nil {
		return plan.CustomSessionDefinition{}, false, err
	}
	return out.Definition, true, nil
}
