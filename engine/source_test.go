package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testData = `[
  {"id": "c1", "type": "cbg", "epoch": 1000},
  {"id": "c2", "type": "cbg", "epoch": 5000},
  {"id": "ps", "type": "pumpSettings", "epoch": 1},
  {"id": "noepoch", "type": "cbg"}
]`

func TestFileSourceReadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	assert.NoError(t, os.WriteFile(path, []byte(testData), 0o600))

	fs := &FileSource{Path: path, Logger: zap.NewExample()}
	raws, err := fs.ReadData(context.Background(), 1000, 5000)
	assert.NoError(t, err)

	ids := make([]interface{}, len(raws))
	for i, raw := range raws {
		ids[i] = raw["id"]
	}
	assert.Equal(t, []interface{}{"c1", "ps", "noepoch"}, ids)

	// Only fully valid records survive decoding.
	assert.Empty(t, decodeAll(raws, zap.NewExample()))
}

func TestFileSourceReadDataErrors(t *testing.T) {
	fs := &FileSource{Path: filepath.Join(t.TempDir(), "missing.json"), Logger: zap.NewExample()}
	_, err := fs.ReadData(context.Background(), 0, 1)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	fs.Path = path
	_, err = fs.ReadData(context.Background(), 0, 1)
	assert.Error(t, err)
}
