package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/indexsync/indexsync/internal/build"
)

// NewVersionCommand returns the command to get the indexsync version
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Return the indexsync version",
		Long:  "Return the indexsync version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}

	return cmd
}

// print out the built version
func version(_ *cobra.Command, _ []string) error {
	log.Printf("indexsync version %s date %s commit id %s ", build.Version, build.Date, build.Commit)
	return nil
}
