package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"apnea/internal/modules/profile/domain"
	profileout "apnea/internal/modules/profile/port/out"
	"apnea/internal/platform/fsutil"
)

// JSONRepository keeps the whole profile store in one JSON document.
type JSONRepository struct {
	path string
}

func NewJSONRepository(path string) profileout.Repository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) Load(ctx context.Context) (domain.Store, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, false, err
	}
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Store{}, false, nil
	}
	if err != nil {
		return domain.Store{}, false, fmt.Errorf("read profiles: %w", err)
	}
	var store domain.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return domain.Store{}, false, fmt.Errorf("decode profiles %s: %w", r.path, err)
	}
	return store, true, nil
}

func (r *JSONRepository) Save(ctx context.Context, store domain.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return fsutil.WriteFileAtomic(r.path, append(raw, '\n'), 0o644)
}
