package out

import (
	"context"
	"errors"

	profiledto "apnea/internal/modules/profile/dto"
	profilein "apnea/internal/modules/profile/port/in"
	sessionout "apnea/internal/modules/session/port/out"
	apperrors "apnea/internal/platform/errors"
)

type ProfileSink struct {
	profiles profilein.Usecase
}

func NewProfileSink(profiles profilein.Usecase) sessionout.RecordSink {
	return ProfileSink{profiles: profiles}
}

func (s ProfileSink) ScheduledFocus(ctx context.Context, date string) (string, bool, error) {
	rec, err := s.profiles.GetRecord(ctx, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Focus, rec.Focus != "", nil
}

func (s ProfileSink) RecordResult(ctx context.Context, date, focus string, sessionTime, bestHold int) (bool, error) {
	out, err := s.profiles.RecordSessionResult(ctx, profiledto.SessionResultInput{
		Date:        date,
		Focus:       focus,
		SessionTime: sessionTime,
		BestHold:    bestHold,
	})
	if err != nil {
		return false, err
	}
	return out.PersonalBest, nil
}
