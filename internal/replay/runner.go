// Package replay plays recorded pointer interactions against a running
// gesture service and checks which gestures it delivered.
package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gestures/pkg/logger"
)

// Run plays every configured scenario and verifies its expectations. It
// returns an error wrapping ErrExpectation when any scenario failed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	applyDefaults(cfg)
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("replay")

	names := cfg.Scenarios
	if len(names) == 0 {
		names = BuiltinNames()
	}
	scenarios := make([]Scenario, 0, len(names))
	for _, n := range names {
		sc, err := Resolve(n)
		if err != nil {
			return stats, err
		}
		scenarios = append(scenarios, sc)
	}

	log.Info(ctx, "starting replay",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("scenarios", len(scenarios)),
		logger.Float64("speed", cfg.Speed),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, err
	}

	for _, sc := range scenarios {
		stats.Scenarios++
		err := runScenario(ctx, client, cfg, sc, stats, log)
		if err != nil {
			stats.Failed++
			log.Error(ctx, "scenario failed", logger.String("scenario", sc.Name), logger.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		stats.Passed++
		log.Info(ctx, "scenario passed", logger.String("scenario", sc.Name))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d scenarios failed", ErrExpectation, stats.Failed, stats.Scenarios)
	}
	return stats, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
}

// runScenario plays sc under a fresh element subtree so concurrent or
// earlier runs cannot satisfy its expectations.
func runScenario(ctx context.Context, client *Client, cfg *Config, sc Scenario, stats *Stats, log logger.Logger) error {
	prefix := "replay/" + uuid.NewString()
	start := time.Now()

	for _, st := range sc.Steps {
		due := start.Add(time.Duration(st.At / cfg.Speed * float64(time.Millisecond)))
		if err := sleepUntil(ctx, due); err != nil {
			return err
		}

		var err error
		if st.Kind == KindKey {
			err = client.PostKey(ctx, st.Key(prefix))
		} else {
			err = client.PostPointer(ctx, st.Pointer(prefix))
		}
		stats.Steps++
		if err != nil {
			stats.Rejected++
			log.Warn(ctx, "step rejected",
				logger.String("scenario", sc.Name),
				logger.Float64("at", st.At),
				logger.Error(err),
			)
			continue
		}
		if cfg.Verbose {
			log.Info(ctx, "step posted",
				logger.String("scenario", sc.Name),
				logger.String("kind", st.Kind),
				logger.Float64("at", st.At),
			)
		}
	}

	return awaitExpectations(ctx, client, cfg.Settle, sc.Expect, prefix)
}

// awaitExpectations polls the feed until the expected gestures show up
// under prefix or settle elapses.
func awaitExpectations(ctx context.Context, client *Client, settle time.Duration, expect []string, prefix string) error {
	deadline := time.Now().Add(settle)
	for {
		gs, err := client.Gestures(ctx, gesturesLimit)
		if err != nil {
			return err
		}
		verr := Verify(expect, Scoped(gs, prefix))
		if verr == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return verr
		}
		if err := sleepUntil(ctx, time.Now().Add(pollInterval)); err != nil {
			return err
		}
	}
}

func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("scenarios", stats.Scenarios),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("steps", stats.Steps),
		logger.Int("rejected", stats.Rejected),
		logger.String("duration", stats.Duration.String()),
	)
}
