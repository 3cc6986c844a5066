package engine

import (
	"context"
	"fmt"
	"time"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/dexcom"
	"glycostats/engine/pkg/mg"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

var (
	DefaultAttempts = uint(3)
	DefaultDelay    = 10 * time.Second
)

//go:generate mockgen -destination=mocks/mock_dexcom.go -package=mocks -mock_names=Source=MockReadingSource glycostats/engine/pkg/dexcom Source
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks glycostats/engine/pkg/mg DataStore

// Importer copies the latest sensor readings into the store.
type Importer struct {
	Source dexcom.Source
	Store  mg.DataStore

	// Fetch retries, DefaultAttempts and DefaultDelay when zero.
	Attempts uint
	Delay    time.Duration

	Logger *zap.Logger
}

// FetchAndLoad writes readings newest first and stops at the first one the
// store already holds. It returns the number of new records.
func (im *Importer) FetchAndLoad(ctx context.Context) (int, error) {
	cbgs, err := im.fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("unable to fetch readings: %w", err)
	}

	n := 0
	for _, cbg := range cbgs {
		res, err := im.Store.WriteData(ctx, cbg)
		if err != nil {
			return n, fmt.Errorf("unable to write reading to store: %w", err)
		}
		if res.MatchedCount > 0 {
			break
		}
		n++
	}

	im.Logger.Debug("imported readings",
		zap.Int("fetched", len(cbgs)),
		zap.Int("new", n),
	)
	return n, nil
}

func (im *Importer) fetch(ctx context.Context) ([]defs.Cbg, error) {
	attempts, delay := im.Attempts, im.Delay
	if attempts == 0 {
		attempts = DefaultAttempts
	}
	if delay == 0 {
		delay = DefaultDelay
	}

	var cbgs []defs.Cbg
	err := retry.Do(
		func() error {
			var err error
			cbgs, err = im.Source.Readings(ctx, dexcom.MinuteLimit, dexcom.CountLimit)
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			im.Logger.Debug("retrying fetch", zap.Uint("attempt", n), zap.Error(err))
		}),
	)
	return cbgs, err
}
