package dto

import "apnea/internal/modules/catalog/domain"

type TemplateSummary struct {
	Name       string
	Category   string
	Strategy   string
	Overridden bool
}

type TemplateOutput struct {
	Name       string
	Category   string
	Overridden bool
	Template   domain.Template
}

type SetTemplateInput struct {
	Name     string
	Template domain.Template
}

type CategoryOutput struct {
	Name  string
	Types []string
}
