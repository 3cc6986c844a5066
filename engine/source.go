package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"glycostats/engine/defs"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks glycostats/engine Source

// Source hands out the raw, not yet validated records of [start, end) in
// epoch milliseconds.
type Source interface {
	ReadData(ctx context.Context, start, end int64) ([]map[string]interface{}, error)
}

// FileSource reads a JSON array of records.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

func (fs *FileSource) ReadData(ctx context.Context, start, end int64) ([]map[string]interface{}, error) {
	file, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to read data file: %w", err)
	}

	var raws []map[string]interface{}
	if err := json.Unmarshal(file, &raws); err != nil {
		return nil, fmt.Errorf("unable to parse data file: %w", err)
	}

	fs.Logger.Debug("read data file",
		zap.String("path", fs.Path),
		zap.Int("records", len(raws)),
	)

	// Records without a usable epoch are kept for validation to reject.
	// Pump settings apply from their date onward and are always kept.
	data := make([]map[string]interface{}, 0, len(raws))
	for _, raw := range raws {
		if raw["type"] == string(defs.PumpSettingsType) {
			data = append(data, raw)
			continue
		}
		if epoch, ok := raw["epoch"].(float64); ok && (int64(epoch) < start || int64(epoch) >= end) {
			continue
		}
		data = append(data, raw)
	}
	return data, nil
}

// decodeAll validates raws at the trust boundary. Invalid records are logged
// and skipped.
func decodeAll(raws []map[string]interface{}, logger *zap.Logger) []defs.Datum {
	data := make([]defs.Datum, 0, len(raws))
	for _, raw := range raws {
		d, err := defs.Decode(raw)
		if err != nil {
			logger.Debug("skipping invalid record",
				zap.Any("id", raw["id"]),
				zap.Error(err),
			)
			continue
		}
		data = append(data, d)
	}
	return data
}
