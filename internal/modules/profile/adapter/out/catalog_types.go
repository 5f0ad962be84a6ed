package out

import (
	"context"

	catalogin "apnea/internal/modules/catalog/port/in"
	profileout "apnea/internal/modules/profile/port/out"
)

type CatalogTypes struct {
	catalog catalogin.Usecase
}

func NewCatalogTypes(catalog catalogin.Usecase) profileout.SessionTypes {
	return CatalogTypes{catalog: catalog}
}

func (c CatalogTypes) Canonical(ctx context.Context, name string) (string, error) {
	out, err := c.catalog.GetTemplate(ctx, name)
	if err != nil {
		return "", err
	}
	return out.Name, nil
}
