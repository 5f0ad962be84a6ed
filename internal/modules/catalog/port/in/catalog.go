package in

import (
	"context"

	"apnea/internal/modules/catalog/dto"
)

type Usecase interface {
	ListTemplates(ctx context.Context) ([]dto.TemplateSummary, error)
	ListCategories(ctx context.Context) ([]dto.CategoryOutput, error)
	GetTemplate(ctx context.Context, name string) (dto.TemplateOutput, error)
	SetTemplate(ctx context.Context, input dto.SetTemplateInput) (dto.TemplateOutput, error)
	ResetTemplate(ctx context.Context, name string) (dto.TemplateOutput, error)
}
