package in

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"apnea/internal/modules/catalog/dto"
	catalogin "apnea/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TemplateSummary, error) {
	return h.usecase.ListTemplates(ctx)
}

func (h CLIHandler) Categories(ctx context.Context) ([]dto.CategoryOutput, error) {
	return h.usecase.ListCategories(ctx)
}

func (h CLIHandler) Show(ctx context.Context, name string) (dto.TemplateOutput, error) {
	return h.usecase.GetTemplate(ctx, name)
}

// ShowYAML renders the current template the way `templates set` accepts it.
func (h CLIHandler) ShowYAML(ctx context.Context, name string) (string, error) {
	out, err := h.usecase.GetTemplate(ctx, name)
	if err != nil {
		return "", err
	}
	raw, err := yaml.Marshal(out.Template)
	if err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}
	return string(raw), nil
}

// Apply decodes a YAML patch over the current template and stores the result.
// Keys missing from the patch keep their current values.
func (h CLIHandler) Apply(ctx context.Context, name string, patch []byte) (dto.TemplateOutput, error) {
	current, err := h.usecase.GetTemplate(ctx, name)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	next := current.Template
	if err := yaml.Unmarshal(patch, &next); err != nil {
		return dto.TemplateOutput{}, fmt.Errorf("decode template patch: %w", err)
	}
	return h.usecase.SetTemplate(ctx, dto.SetTemplateInput{Name: current.Name, Template: next})
}

func (h CLIHandler) Reset(ctx context.Context, name string) (dto.TemplateOutput, error) {
	return h.usecase.ResetTemplate(ctx, name)
}
