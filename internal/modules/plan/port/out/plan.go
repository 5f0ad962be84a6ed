package out

import (
	"context"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/plan/domain"
)

type TemplateSource interface {
	// Template returns the canonical session-type name with its current template.
	Template(ctx context.Context, name string) (string, catalog.Template, error)
}

type ProfileSource interface {
	CurrentMaxHold(ctx context.Context) (int, bool, error)
	CustomSession(ctx context.Context, name string) (domain.CustomSessionDefinition, bool, error)
}
