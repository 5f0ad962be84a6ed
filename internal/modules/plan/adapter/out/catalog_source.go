package out

import (
	"context"

	catalog "apnea/internal/modules/catalog/domain"
	catalogin "apnea/internal/modules/catalog/port/in"
	planout "apnea/internal/modules/plan/port/out"
)

type CatalogSource struct {
	catalog catalogin.Usecase
}

func NewCatalogSource(catalog catalogin.Usecase) planout.TemplateSource {
	return &CatalogSource{catalog: catalog}
}

func (s *CatalogSource) Template(ctx context.Context, name string) (string, catalog.Template, error) {
	out, err := s.catalog.GetTemplate(ctx, name)
	if err != nil {
		return "", catalog.Template{}, err
	}
	return out.Name, out.Template, nil
}
