package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// RunHeadless runs the application without any preview.
//
// step is called once per tick; a step returning ErrStop ends the run
// without an error.
func RunHeadless(ctx context.Context, cfg HostConfig, newApp func(HAL) (func() error, error), hcfg HeadlessConfig) error {
	if hcfg.Hz <= 0 {
		hcfg.Hz = 60
	}

	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(hcfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hcfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return stopErr(err)
				}
			}
			tick++
			if hcfg.Ticks > 0 && tick >= hcfg.Ticks {
				return nil
			}
		}
	}
}
