package usecase

import (
	"context"

	"apnea/internal/modules/session/dto"
	sessionin "apnea/internal/modules/session/port/in"
	"apnea/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Prepare(ctx context.Context, input dto.PrepareInput) (dto.PrepareOutput, error) {
	p, date, missing, err := i.svc.Prepare(ctx, input.SessionType, input.Date, input.MaxHold)
	if err != nil {
		return dto.PrepareOutput{}, err
	}
	return dto.PrepareOutput{Plan: p, Date: date, MaxHoldMissing: missing}, nil
}

func (i *Interactor) Finish(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error) {
	entry, recorded, err := i.svc.Finish(ctx, input.Date, input.Summary, input.Notes)
	if err != nil {
		return dto.FinishOutput{Recorded: recorded}, err
	}
	return dto.FinishOutput{
		EntryID:      entry.ID,
		Path:         entry.Path,
		Recorded:     recorded,
		PersonalBest: entry.PersonalBest,
		BestHold:     entry.BestHold(),
	}, nil
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	res, err := i.svc.Run(ctx, input.Plan, input.Date, input.Strict, input.Ticks, input.Commands, input.Observer)
	out := dto.RunOutput{Summary: res.Summary, Completed: res.Completed}
	if res.Completed {
		out.Finish = dto.FinishOutput{
			EntryID:      res.Entry.ID,
			Path:         res.Entry.Path,
			Recorded:     res.Recorded,
			PersonalBest: res.Entry.PersonalBest,
			BestHold:     res.Entry.BestHold(),
		}
	}
	return out, err
}

func (i *Interactor) Journal(ctx context.Context, input dto.JournalInput) ([]dto.JournalOutput, error) {
	entries, err := i.svc.Journal(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JournalOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.JournalOutput{
			ID:              e.ID,
			Date:            e.Date,
			Focus:           e.Focus,
			TotalTime:       e.TotalTime,
			CompletedPhases: e.CompletedPhases,
			TotalPhases:     e.TotalPhases,
			BestHold:        e.BestHold(),
			EndedEarly:      e.EndedEarly,
			PersonalBest:    e.PersonalBest,
			StartedAt:       e.StartedAt,
			Path:            e.Path,
		})
	}
	return out, nil
}
