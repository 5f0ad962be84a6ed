package in

import (
	"context"

	"apnea/internal/modules/profile/dto"
	profilein "apnea/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProfileOutput, error) {
	return h.usecase.ListProfiles(ctx)
}

// Create treats a non-positive maxHold as unset.
func (h CLIHandler) Create(ctx context.Context, name string, maxHold int) (dto.ProfileOutput, error) {
	input := dto.CreateProfileInput{Name: name}
	if maxHold > 0 {
		input.MaxHold = &maxHold
	}
	return h.usecase.CreateProfile(ctx, input)
}

func (h CLIHandler) Use(ctx context.Context, ref string) (dto.ProfileOutput, error) {
	return h.usecase.UseProfile(ctx, ref)
}

func (h CLIHandler) Delete(ctx context.Context, ref string) error {
	return h.usecase.DeleteProfile(ctx, ref)
}

func (h CLIHandler) SetMaxHold(ctx context.Context, seconds int) (dto.ProfileOutput, error) {
	return h.usecase.SetMaxHold(ctx, seconds)
}

func (h CLIHandler) Records(ctx context.Context, from, to string) ([]dto.RecordOutput, error) {
	return h.usecase.ListRecords(ctx, dto.ListRecordsInput{From: from, To: to})
}

func (h CLIHandler) Record(ctx context.Context, date string) (dto.RecordOutput, error) {
	return h.usecase.GetRecord(ctx, date)
}

func (h CLIHandler) SetRecordMaxHold(ctx context.Context, date string, seconds int) (dto.UpdateRecordOutput, error) {
	return h.usecase.UpdateRecord(ctx, dto.UpdateRecordInput{Date: date, ActualMaxHold: &seconds})
}

func (h CLIHandler) ClearRecordMaxHold(ctx context.Context, date string) (dto.UpdateRecordOutput, error) {
	return h.usecase.UpdateRecord(ctx, dto.UpdateRecordInput{Date: date, ClearMaxHold: true})
}

func (h CLIHandler) Note(ctx context.Context, date, text string) (dto.UpdateRecordOutput, error) {
	return h.usecase.UpdateRecord(ctx, dto.UpdateRecordInput{Date: date, Notes: &text})
}

func (h CLIHandler) Toggle(ctx context.Context, date string) (dto.RecordOutput, error) {
	return h.usecase.ToggleComplete(ctx, date)
}

func (h CLIHandler) GenerateSchedule(ctx context.Context, from, to string) (dto.ScheduleOutput, error) {
	return h.usecase.GenerateSchedule(ctx, dto.GenerateScheduleInput{From: from, To: to})
}

func (h CLIHandler) SetDay(ctx context.Context, weekday, sessionType string) (dto.ProfileOutput, error) {
	return h.usecase.SetWeeklySchedule(ctx, dto.WeeklyScheduleInput{Weekday: weekday, SessionType: sessionType})
}

func (h CLIHandler) CustomSessions(ctx context.Context) ([]dto.CustomSessionOutput, error) {
	return h.usecase.ListCustomSessions(ctx)
}

func (h CLIHandler) SaveCustomSession(ctx context.Context, input dto.CustomSessionInput) (dto.CustomSessionOutput, error) {
	return h.usecase.SaveCustomSession(ctx, input)
}

func (h CLIHandler) RemoveCustomSession(ctx context.Context, name string) error {
	return h.usecase.DeleteCustomSession(ctx, name)
}

func (h CLIHandler) Export(ctx context.Context, path string) (dto.ExchangeOutput, error) {
	return h.usecase.Export(ctx, dto.ExchangeInput{Path: path})
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ExchangeOutput, error) {
	return h.usecase.Import(ctx, dto.ExchangeInput{Path: path})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
