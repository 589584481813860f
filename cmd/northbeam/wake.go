package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/northbeam/website/internal/wake"
	"github.com/northbeam/website/pkg/logging"
)

// tally counts probe outcomes for the wake command's summary.
type tally struct {
	ok, failed atomic.Int64
}

func (t *tally) CycleStarted() {}

func (t *tally) ProbeFinished(err error) {
	if err != nil {
		t.failed.Add(1)
		return
	}
	t.ok.Add(1)
}

func newWakeCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "wake",
		Short: "Send one round of wake probes to every registered service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := wake.LoadOrDefault(a.cfg.Registry)
			if err != nil {
				return err
			}

			var t tally
			d := wake.NewDispatcher(wake.WithLogger(a.logger), wake.WithObserver(&t))

			// A wake cycle outside a page view: fire once, then wait.
			wake.NewKeepAlive(reg, d).HandleScroll(cmd.Context())

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := d.Drain(ctx); err != nil {
				return err
			}

			a.logger.Info("wake cycle finished",
				logging.Int("probes", reg.Len()),
				logging.Int64("failed", t.failed.Load()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%d probes sent, %d ok, %d failed\n", reg.Len(), t.ok.Load(), t.failed.Load())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for probes to finish")
	return cmd
}
