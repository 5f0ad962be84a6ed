package in

import (
	"context"

	"apnea/internal/modules/session/dto"
)

type Usecase interface {
	Prepare(ctx context.Context, input dto.PrepareInput) (dto.PrepareOutput, error)
	Finish(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error)
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
	Journal(ctx context.Context, input dto.JournalInput) ([]dto.JournalOutput, error)
}
