package service

import (
	"context"
	"fmt"
	"strings"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/profile/domain"
	profileout "apnea/internal/modules/profile/port/out"
	"apnea/internal/platform/clock"
	apperrors "apnea/internal/platform/errors"
	"apnea/internal/platform/id"
	applog "apnea/internal/platform/log"
	"apnea/internal/platform/tx"
)

type ProfileService struct {
	clock     clock.Clock
	idGen     id.Generator
	repo      profileout.Repository
	projector profileout.RecordProjector
	exchange  profileout.ExchangeStore
	types     profileout.SessionTypes
	tx        tx.Manager
}

func NewProfileService(
	clock clock.Clock,
	idGen id.Generator,
	repo profileout.Repository,
	projector profileout.RecordProjector,
	exchange profileout.ExchangeStore,
	types profileout.SessionTypes,
	txm tx.Manager,
) *ProfileService {
	if txm == nil {
		txm = &tx.Serial{}
	}
	return &ProfileService{clock: clock, idGen: idGen, repo: repo, projector: projector, exchange: exchange, types: types, tx: txm}
}

func (s *ProfileService) load(ctx context.Context) (domain.Store, bool, error) {
	store, found, err := s.repo.Load(ctx)
	if err != nil {
		logger := applog.WithComponent("profile")
		logger.Warn().Err(err).Msg("load profile store")
		return domain.Store{}, false, fmt.Errorf("load profiles: %w", err)
	}
	now := s.clock.Now()
	if !found {
		return domain.NewDefaultStore(now), true, nil
	}
	store.Normalize(now)
	return store, false, nil
}

func (s *ProfileService) persist(ctx context.Context, store *domain.Store) error {
	logger := applog.WithComponent("profile")
	store.LastUpdated = s.clock.Now()
	if err := s.repo.Save(ctx, *store); err != nil {
		logger.Warn().Err(err).Msg("save profile store")
		return fmt.Errorf("save profiles: %w", err)
	}
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Project(ctx, *store); err != nil {
		logger.Warn().Err(err).Msg("project session records")
		return fmt.Errorf("project records: %w", err)
	}
	return nil
}

// View returns the current store. The first call on a fresh data directory
// writes the default store.
func (s *ProfileService) View(ctx context.Context) (domain.Store, error) {
	var out domain.Store
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		store, created, err := s.load(ctx)
		if err != nil {
			return err
		}
		if created {
			if err := s.persist(ctx, &store); err != nil {
				return err
			}
		}
		out = store
		return nil
	})
	return out, err
}

// Mutate loads, applies fn and saves as one unit. Nothing is written when fn
// fails.
func (s *ProfileService) Mutate(ctx context.Context, fn func(*domain.Store) error) (domain.Store, error) {
	var out domain.Store
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		store, _, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(&store); err != nil {
			return err
		}
		if err := s.persist(ctx, &store); err != nil {
			return err
		}
		out = store
		return nil
	})
	return out, err
}

func (s *ProfileService) CreateProfile(ctx context.Context, name string, maxHold *int) (domain.Store, error) {
	profileID := "profile_" + s.idGen.New()
	return s.Mutate(ctx, func(store *domain.Store) error {
		if _, err := store.AddProfile(profileID, name, s.clock.Now(), maxHold); err != nil {
			return err
		}
		logger := applog.WithComponent("profile")
		logger.Info().Str("profile_id", profileID).Str("name", strings.TrimSpace(name)).Msg("profile created")
		return nil
	})
}

func (s *ProfileService) UseProfile(ctx context.Context, ref string) (domain.Store, error) {
	return s.Mutate(ctx, func(store *domain.Store) error {
		profileID, _, ok := store.Lookup(ref)
		if !ok {
			return fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, ref)
		}
		store.CurrentProfile = profileID
		return nil
	})
}

func (s *ProfileService) DeleteProfile(ctx context.Context, ref string) error {
	_, err := s.Mutate(ctx, func(store *domain.Store) error {
		return store.RemoveProfile(ref)
	})
	return err
}

func (s *ProfileService) SetMaxHold(ctx context.Context, seconds int) (domain.Store, error) {
	return s.Mutate(ctx, func(store *domain.Store) error {
		return store.Current().SetMaxHold(seconds)
	})
}

// DateKey normalises an optional YYYY-MM-DD value, defaulting to today.
func (s *ProfileService) DateKey(date string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return domain.DateKey(clock.Today(s.clock)), nil
	}
	t, err := domain.ParseDate(date)
	if err != nil {
		return "", err
	}
	return domain.DateKey(t), nil
}

func (s *ProfileService) UpdateRecord(ctx context.Context, date string, patch domain.RecordPatch) (domain.Store, domain.Record, bool, error) {
	key, err := s.DateKey(date)
	if err != nil {
		return domain.Store{}, domain.Record{}, false, err
	}
	var (
		rec    domain.Record
		raised bool
	)
	store, err := s.Mutate(ctx, func(store *domain.Store) error {
		var err error
		rec, raised, err = store.Current().UpdateRecord(key, patch)
		return err
	})
	if err != nil {
		return domain.Store{}, domain.Record{}, false, err
	}
	if raised {
		logger := applog.WithComponent("profile")
		logger.Info().Int("max_hold", *store.Current().CurrentMaxHold).Msg("new personal best")
	}
	return store, rec, raised, nil
}

func (s *ProfileService) ToggleComplete(ctx context.Context, date string) (domain.Store, domain.Record, error) {
	key, err := s.DateKey(date)
	if err != nil {
		return domain.Store{}, domain.Record{}, err
	}
	var rec domain.Record
	store, err := s.Mutate(ctx, func(store *domain.Store) error {
		var err error
		rec, err = store.Current().ToggleComplete(key)
		return err
	})
	return store, rec, err
}

// RecordSessionResult stores a finished run. An empty focus keeps the day's
// scheduled focus.
func (s *ProfileService) RecordSessionResult(ctx context.Context, date, focus string, sessionTime, bestHold int) (domain.Store, domain.Record, bool, error) {
	if sessionTime <= 0 {
		return domain.Store{}, domain.Record{}, false, fmt.Errorf("%w: session time must be positive", apperrors.ErrInvalidInput)
	}
	key, err := s.DateKey(date)
	if err != nil {
		return domain.Store{}, domain.Record{}, false, err
	}
	day, _ := domain.ParseDate(key)
	var (
		rec    domain.Record
		raised bool
	)
	store, err := s.Mutate(ctx, func(store *domain.Store) error {
		p := store.Current()
		if focus == "" {
			if existing, ok := p.Record(key); ok {
				focus = existing.Focus
			} else {
				focus = domain.FocusFor(day.Weekday(), p.WeeklySchedule)
			}
		}
		rec, raised = p.RecordSessionResult(key, day.Weekday().String(), focus, sessionTime, bestHold)
		return nil
	})
	if err != nil {
		return domain.Store{}, domain.Record{}, false, err
	}
	logger := applog.WithComponent("profile")
	logger.Info().Str("date", key).Int("session_time", sessionTime).Bool("personal_best", raised).Msg("session recorded")
	return store, rec, raised, nil
}

// GenerateSchedule materialises [from, to] for the current profile. Empty
// bounds default to today and today plus the schedule horizon.
func (s *ProfileService) GenerateSchedule(ctx context.Context, from, to string) (domain.Store, int, error) {
	start, err := s.DateKey(from)
	if err != nil {
		return domain.Store{}, 0, err
	}
	startDay, _ := domain.ParseDate(start)
	endDay := startDay.AddDate(0, 0, domain.ScheduleHorizon)
	if strings.TrimSpace(to) != "" {
		if endDay, err = domain.ParseDate(to); err != nil {
			return domain.Store{}, 0, err
		}
	}
	if endDay.Before(startDay) {
		return domain.Store{}, 0, fmt.Errorf("%w: schedule end %s is before start %s", apperrors.ErrInvalidInput, domain.DateKey(endDay), start)
	}
	added := 0
	store, err := s.Mutate(ctx, func(store *domain.Store) error {
		p := store.Current()
		generated := domain.GenerateSchedule(startDay, endDay, p.CurrentMaxHold, p.WeeklySchedule)
		p.Sessions, added = domain.MergeSchedule(p.Sessions, generated)
		return nil
	})
	return store, added, err
}

// SetWeeklySchedule binds a weekday to a session type or custom session. An
// empty type restores the built-in rotation for that day. Already generated
// days keep their focus.
func (s *ProfileService) SetWeeklySchedule(ctx context.Context, weekday, sessionType string) (domain.Store, error) {
	day, err := domain.ParseWeekday(weekday)
	if err != nil {
		return domain.Store{}, err
	}
	sessionType = strings.TrimSpace(sessionType)
	return s.Mutate(ctx, func(store *domain.Store) error {
		p := store.Current()
		key := domain.WeekdayKey(day)
		if sessionType == "" {
			delete(p.WeeklySchedule, key)
			return nil
		}
		name := sessionType
		if _, custom := p.CustomSessions[sessionType]; !custom {
			canonical, err := s.types.Canonical(ctx, sessionType)
			if err != nil {
				return err
			}
			name = canonical
		}
		p.WeeklySchedule[key] = name
		return nil
	})
}

func (s *ProfileService) SaveCustomSession(ctx context.Context, def plan.CustomSessionDefinition) (domain.Store, error) {
	return s.Mutate(ctx, func(store *domain.Store) error {
		return store.Current().SaveCustomSession(def)
	})
}

func (s *ProfileService) DeleteCustomSession(ctx context.Context, name string) error {
	_, err := s.Mutate(ctx, func(store *domain.Store) error {
		return store.Current().DeleteCustomSession(name)
	})
	return err
}

func (s *ProfileService) Export(ctx context.Context, path string) (domain.ExportData, error) {
	store, err := s.View(ctx)
	if err != nil {
		return domain.ExportData{}, err
	}
	data := store.Current().Export()
	if err := s.exchange.Write(ctx, path, data); err != nil {
		return domain.ExportData{}, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// Import replaces the current profile's records and max hold. A file that
// fails to decode leaves the store untouched.
func (s *ProfileService) Import(ctx context.Context, path string) (domain.ExportData, error) {
	data, err := s.exchange.Read(ctx, path)
	if err != nil {
		return domain.ExportData{}, fmt.Errorf("import: %w", err)
	}
	if data.CurrentMaxHold != nil && *data.CurrentMaxHold <= 0 {
		data.CurrentMaxHold = nil
	}
	for _, r := range data.Sessions {
		if _, err := domain.ParseDate(r.Date); err != nil {
			return domain.ExportData{}, fmt.Errorf("import: %w", err)
		}
	}
	_, err = s.Mutate(ctx, func(store *domain.Store) error {
		store.Current().Import(data)
		return nil
	})
	if err != nil {
		return domain.ExportData{}, err
	}
	return data, nil
}

// Reindex rebuilds the record projection from the JSON store.
func (s *ProfileService) Reindex(ctx context.Context) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		store, _, err := s.load(ctx)
		if err != nil {
			return err
		}
		if s.projector == nil {
			return nil
		}
		if err := s.projector.Project(ctx, store); err != nil {
			return fmt.Errorf("reindex records: %w", err)
		}
		return nil
	})
}
