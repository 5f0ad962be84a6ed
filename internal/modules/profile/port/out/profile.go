package out

import (
	"context"

	"apnea/internal/modules/profile/domain"
)

type Repository interface {
	// Load reports false when no store has been written yet.
	Load(ctx context.Context) (domain.Store, bool, error)
	Save(ctx context.Context, store domain.Store) error
}

// RecordProjector mirrors every profile's records into a queryable index.
type RecordProjector interface {
	Project(ctx context.Context, store domain.Store) error
}

type ExchangeStore interface {
	Write(ctx context.Context, path string, data domain.ExportData) error
	Read(ctx context.Context, path string) (domain.ExportData, error)
}

// SessionTypes resolves a session-type name or slug to its catalog name.
type SessionTypes interface {
	Canonical(ctx context.Context, name string) (string, error)
}
