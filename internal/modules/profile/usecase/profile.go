package usecase

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"apnea/internal/modules/profile/domain"
	"apnea/internal/modules/profile/dto"
	profilein "apnea/internal/modules/profile/port/in"
	"apnea/internal/modules/profile/service"
	apperrors "apnea/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func toProfileOutput(store domain.Store, profileID string) dto.ProfileOutput {
	p := store.Profiles[profileID]
	maxHold, ok := p.MaxHold()
	completed := 0
	for _, r := range p.Sessions {
		if r.Completed {
			completed++
		}
	}
	return dto.ProfileOutput{
		ID:             profileID,
		Name:           p.Name,
		Created:        p.Created,
		Current:        store.CurrentProfile == profileID,
		CurrentMaxHold: p.CurrentMaxHold,
		MaxHold:        maxHold,
		HasMaxHold:     ok,
		Sessions:       len(p.Sessions),
		Completed:      completed,
		CustomSessions: p.CustomSessionNames(),
		WeeklySchedule: maps.Clone(p.WeeklySchedule),
	}
}

func toRecordOutput(profileID string, r domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ProfileID:     profileID,
		Date:          r.Date,
		Day:           r.Day,
		Focus:         r.Focus,
		SessionType:   r.SessionType,
		Details:       r.Details,
		Notes:         r.Notes,
		ActualMaxHold: r.ActualMaxHold,
		Completed:     r.Completed,
		SessionTime:   r.SessionTime,
	}
}

func current(store domain.Store) dto.ProfileOutput {
	return toProfileOutput(store, store.CurrentProfile)
}

func (i *Interactor) Current(ctx context.Context) (dto.ProfileOutput, error) {
	store, err := i.svc.View(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return current(store), nil
}

func (i *Interactor) ListProfiles(ctx context.Context) ([]dto.ProfileOutput, error) {
	store, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	ids := store.IDs()
	out := make([]dto.ProfileOutput, 0, len(ids))
	for _, profileID := range ids {
		out = append(out, toProfileOutput(store, profileID))
	}
	return out, nil
}

func (i *Interactor) CreateProfile(ctx context.Context, input dto.CreateProfileInput) (dto.ProfileOutput, error) {
	store, err := i.svc.CreateProfile(ctx, input.Name, input.MaxHold)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return current(store), nil
}

func (i *Interactor) UseProfile(ctx context.Context, ref string) (dto.ProfileOutput, error) {
	store, err := i.svc.UseProfile(ctx, ref)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return current(store), nil
}

func (i *Interactor) DeleteProfile(ctx context.Context, ref string) error {
	return i.svc.DeleteProfile(ctx, ref)
}

func (i *Interactor) SetMaxHold(ctx context.Context, seconds int) (dto.ProfileOutput, error) {
	store, err := i.svc.SetMaxHold(ctx, seconds)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return current(store), nil
}

func (i *Interactor) ListRecords(ctx context.Context, input dto.ListRecordsInput) ([]dto.RecordOutput, error) {
	store, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	from, to := "", ""
	if input.From != "" {
		if from, err = i.svc.DateKey(input.From); err != nil {
			return nil, err
		}
	}
	if input.To != "" {
		if to, err = i.svc.DateKey(input.To); err != nil {
			return nil, err
		}
	}
	out := []dto.RecordOutput{}
	for _, r := range store.Current().Sessions {
		if (from != "" && r.Date < from) || (to != "" && r.Date > to) {
			continue
		}
		out = append(out, toRecordOutput(store.CurrentProfile, r))
	}
	return out, nil
}

func (i *Interactor) GetRecord(ctx context.Context, date string) (dto.RecordOutput, error) {
	key, err := i.svc.DateKey(date)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	store, err := i.svc.View(ctx)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	rec, ok := store.Current().Record(key)
	if !ok {
		return dto.RecordOutput{}, fmt.Errorf("%w: no session on %s", apperrors.ErrNotFound, key)
	}
	return toRecordOutput(store.CurrentProfile, *rec), nil
}

func (i *Interactor) UpdateRecord(ctx context.Context, input dto.UpdateRecordInput) (dto.UpdateRecordOutput, error) {
	store, rec, raised, err := i.svc.UpdateRecord(ctx, input.Date, domain.RecordPatch{
		ActualMaxHold: input.ActualMaxHold,
		ClearMaxHold:  input.ClearMaxHold,
		Notes:         input.Notes,
		Completed:     input.Completed,
	})
	if err != nil {
		return dto.UpdateRecordOutput{}, err
	}
	return dto.UpdateRecordOutput{Record: toRecordOutput(store.CurrentProfile, rec), PersonalBest: raised, MaxHold: store.Current().CurrentMaxHold}, nil
}

func (i *Interactor) ToggleComplete(ctx context.Context, date string) (dto.RecordOutput, error) {
	store, rec, err := i.svc.ToggleComplete(ctx, date)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(store.CurrentProfile, rec), nil
}

func (i *Interactor) RecordSessionResult(ctx context.Context, input dto.SessionResultInput) (dto.UpdateRecordOutput, error) {
	store, rec, raised, err := i.svc.RecordSessionResult(ctx, input.Date, input.Focus, input.SessionTime, input.BestHold)
	if err != nil {
		return dto.UpdateRecordOutput{}, err
	}
	return dto.UpdateRecordOutput{Record: toRecordOutput(store.CurrentProfile, rec), PersonalBest: raised, MaxHold: store.Current().CurrentMaxHold}, nil
}

func (i *Interactor) GenerateSchedule(ctx context.Context, input dto.GenerateScheduleInput) (dto.ScheduleOutput, error) {
	store, added, err := i.svc.GenerateSchedule(ctx, input.From, input.To)
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	out := dto.ScheduleOutput{Added: added}
	for _, r := range store.Current().Sessions {
		out.Records = append(out.Records, toRecordOutput(store.CurrentProfile, r))
	}
	return out, nil
}

func (i *Interactor) SetWeeklySchedule(ctx context.Context, input dto.WeeklyScheduleInput) (dto.ProfileOutput, error) {
	store, err := i.svc.SetWeeklySchedule(ctx, input.Weekday, input.SessionType)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return current(store), nil
}

func (i *Interactor) ListCustomSessions(ctx context.Context) ([]dto.CustomSessionOutput, error) {
	store, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	p := store.Current()
	out := []dto.CustomSessionOutput{}
	for _, name := range p.CustomSessionNames() {
		out = append(out, dto.CustomSessionOutput{Definition: p.CustomSessions[name]})
	}
	return out, nil
}

func (i *Interactor) GetCustomSession(ctx context.Context, name string) (dto.CustomSessionOutput, error) {
	store, err := i.svc.View(ctx)
	if err != nil {
		return dto.CustomSessionOutput{}, err
	}
	def, ok := store.Current().CustomSessions[name]
	if !ok {
		return dto.CustomSessionOutput{}, fmt.Errorf("%w: custom session %s", apperrors.ErrNotFound, name)
	}
	return dto.CustomSessionOutput{Definition: def}, nil
}

func (i *Interactor) SaveCustomSession(ctx context.Context, input dto.CustomSessionInput) (dto.CustomSessionOutput, error) {
	store, err := i.svc.SaveCustomSession(ctx, input.Definition)
	if err != nil {
		return dto.CustomSessionOutput{}, err
	}
	name := strings.TrimSpace(input.Definition.Name)
	return dto.CustomSessionOutput{Definition: store.Current().CustomSessions[name]}, nil
}

func (i *Interactor) DeleteCustomSession(ctx context.Context, name string) error {
	return i.svc.DeleteCustomSession(ctx, name)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExchangeInput) (dto.ExchangeOutput, error) {
	data, err := i.svc.Export(ctx, input.Path)
	if err != nil {
		return dto.ExchangeOutput{}, err
	}
	return dto.ExchangeOutput{Path: input.Path, Sessions: len(data.Sessions), CurrentMaxHold: data.CurrentMaxHold}, nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ExchangeInput) (dto.ExchangeOutput, error) {
	data, err := i.svc.Import(ctx, input.Path)
	if err != nil {
		return dto.ExchangeOutput{}, err
	}
	return dto.ExchangeOutput{Path: input.Path, Sessions: len(data.Sessions), CurrentMaxHold: data.CurrentMaxHold}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}
