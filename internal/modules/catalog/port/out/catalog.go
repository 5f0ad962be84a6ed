package out

import (
	"context"

	"apnea/internal/modules/catalog/domain"
)

// OverrideStore persists edited templates keyed by session-type name.
type OverrideStore interface {
	Load(ctx context.Context) (map[string]domain.Template, error)
	Save(ctx context.Context, overrides map[string]domain.Template) error
}
