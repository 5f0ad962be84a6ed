package out

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"apnea/internal/modules/catalog/domain"
	catalogout "apnea/internal/modules/catalog/port/out"
	"apnea/internal/platform/fsutil"
)

type overrideFile struct {
	Templates map[string]domain.Template `yaml:"templates"`
}

// YAMLOverrideStore keeps edited templates in a single YAML document.
type YAMLOverrideStore struct {
	path string
}

func NewYAMLOverrideStore(path string) catalogout.OverrideStore {
	return &YAMLOverrideStore{path: path}
}

func (s *YAMLOverrideStore) Load(ctx context.Context) (map[string]domain.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.Template{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var file overrideFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode templates %s: %w", s.path, err)
	}
	if file.Templates == nil {
		file.Templates = map[string]domain.Template{}
	}
	return file.Templates, nil
}

func (s *YAMLOverrideStore) Save(ctx context.Context, overrides map[string]domain.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(overrideFile{Templates: overrides})
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}
	return fsutil.WriteFileAtomic(s.path, raw, 0o644)
}
