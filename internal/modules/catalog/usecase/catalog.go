package usecase

import (
	"context"

	"apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/catalog/dto"
	catalogin "apnea/internal/modules/catalog/port/in"
	"apnea/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListTemplates(ctx context.Context) ([]dto.TemplateSummary, error) {
	overridden, err := i.svc.Overridden(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateSummary, 0, len(domain.Names))
	for _, name := range domain.Names {
		t, _, err := i.svc.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.TemplateSummary{
			Name:       name,
			Category:   domain.CategoryOf(name),
			Strategy:   string(t.Strategy),
			Overridden: overridden[name],
		})
	}
	return out, nil
}

func (i *Interactor) ListCategories(_ context.Context) ([]dto.CategoryOutput, error) {
	out := make([]dto.CategoryOutput, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, dto.CategoryOutput{Name: c.Name, Types: append([]string(nil), c.Types...)})
	}
	return out, nil
}

func (i *Interactor) GetTemplate(ctx context.Context, name string) (dto.TemplateOutput, error) {
	t, overridden, err := i.svc.Get(ctx, name)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	canonical, err := i.svc.Resolve(ctx, name)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return dto.TemplateOutput{Name: canonical, Category: domain.CategoryOf(canonical), Overridden: overridden, Template: t}, nil
}

func (i *Interactor) SetTemplate(ctx context.Context, input dto.SetTemplateInput) (dto.TemplateOutput, error) {
	canonical, err := i.svc.Set(ctx, input.Name, input.Template)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return i.GetTemplate(ctx, canonical)
}

func (i *Interactor) ResetTemplate(ctx context.Context, name string) (dto.TemplateOutput, error) {
	canonical, err := i.svc.Reset(ctx, name)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return i.GetTemplate(ctx, canonical)
}
