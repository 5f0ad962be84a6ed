package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"apnea/internal/modules/profile/domain"
	profileout "apnea/internal/modules/profile/port/out"
	"apnea/internal/platform/fsutil"
)

type JSONExchange struct{}

func NewJSONExchange() profileout.ExchangeStore {
	return JSONExchange{}
}

func (JSONExchange) Write(ctx context.Context, path string, data domain.ExportData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data.Sessions == nil {
		data.Sessions = []domain.Record{}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return fsutil.WriteFileAtomic(path, append(raw, '\n'), 0o644)
}

func (JSONExchange) Read(ctx context.Context, path string) (domain.ExportData, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExportData{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ExportData{}, fmt.Errorf("read import file: %w", err)
	}
	var data domain.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.ExportData{}, fmt.Errorf("decode import file %s: %w", path, err)
	}
	if data.Sessions == nil {
		data.Sessions = []domain.Record{}
	}
	return data, nil
}
