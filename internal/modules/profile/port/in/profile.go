package in

import (
	"context"

	"apnea/internal/modules/profile/dto"
)

type Usecase interface {
	Current(ctx context.Context) (dto.ProfileOutput, error)
	ListProfiles(ctx context.Context) ([]dto.ProfileOutput, error)
	CreateProfile(ctx context.Context, input dto.CreateProfileInput) (dto.ProfileOutput, error)
	UseProfile(ctx context.Context, ref string) (dto.ProfileOutput, error)
	DeleteProfile(ctx context.Context, ref string) error
	SetMaxHold(ctx context.Context, seconds int) (dto.ProfileOutput, error)

	ListRecords(ctx context.Context, input dto.ListRecordsInput) ([]dto.RecordOutput, error)
	GetRecord(ctx context.Context, date string) (dto.RecordOutput, error)
	UpdateRecord(ctx context.Context, input dto.UpdateRecordInput) (dto.UpdateRecordOutput, error)
	ToggleComplete(ctx context.Context, date string) (dto.RecordOutput, error)
	RecordSessionResult(ctx context.Context, input dto.SessionResultInput) (dto.UpdateRecordOutput, error)

	GenerateSchedule(ctx context.Context, input dto.GenerateScheduleInput) (dto.ScheduleOutput, error)
	SetWeeklySchedule(ctx context.Context, input dto.WeeklyScheduleInput) (dto.ProfileOutput, error)

	ListCustomSessions(ctx context.Context) ([]dto.CustomSessionOutput, error)
	GetCustomSession(ctx context.Context, name string) (dto.CustomSessionOutput, error)
	SaveCustomSession(ctx context.Context, input dto.CustomSessionInput) (dto.CustomSessionOutput, error)
	DeleteCustomSession(ctx context.Context, name string) error

	Export(ctx context.Context, input dto.ExchangeInput) (dto.ExchangeOutput, error)
	Import(ctx context.Context, input dto.ExchangeInput) (dto.ExchangeOutput, error)
	Reindex(ctx context.Context) error
}
