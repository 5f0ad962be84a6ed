package out

import (
	"context"

	"apnea/internal/modules/progress/domain"
)

type RecordReader interface {
	Records(ctx context.Context, profileID string) ([]domain.Record, error)
}

type ProfileLocator interface {
	CurrentProfile(ctx context.Context) (string, string, error)
}
