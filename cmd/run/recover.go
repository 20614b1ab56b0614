package run

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/indexsync/indexsync/pkg/indexer/recovery"
)

const minAgeFlag = "min-age"

// NewRecoverCommand returns the command running a single recovery pass over the
// change queue.
func NewRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Drain the change queue once",
		Long:  "Index the change queue items older than --min-age, loop after loop, until the queue is drained or a loop trips the circuit breaker.",
		RunE:  runRecover,
		Args:  cobra.NoArgs,
	}

	addConfigFlags(cmd)
	cmd.Flags().Duration(minAgeFlag, 0, "the minimum age of the items to index, 0 picks up every item")
	cmd.PreRun = bindConfigFlags

	return cmd
}

func runRecover(cmd *cobra.Command, _ []string) error {
	cfg, serverCtx, err := newServerContext()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	closeComponents, err := serverCtx.Prepare(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeComponents()

	if err := serverCtx.Indexers.IndexOnStartup(ctx); err != nil {
		return fmt.Errorf("failed to index on startup: %w", err)
	}

	rc := cfg.Recovery.Recovery()
	rc.MinAge, err = cmd.Flags().GetDuration(minAgeFlag)
	if err != nil {
		return err
	}

	sweep := recovery.New(serverCtx.Datastore, serverCtx.Indexers,
		recovery.WithConfig(rc),
		recovery.WithLogger(serverCtx.Logger),
	)

	start := time.Now()
	result, err := sweep.Recover(ctx)
	if err != nil {
		return fmt.Errorf("recovery failed: %w", err)
	}

	pending, err := serverCtx.Datastore.CountQueueItems(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d items (%d failures) in %s, %d items pending\n",
		result.Total, result.Failures, time.Since(start).Round(time.Millisecond), pending)

	if result.Failures > 0 {
		return fmt.Errorf("%d items failed to index and stay queued", result.Failures)
	}
	return nil
}
