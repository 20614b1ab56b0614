// Package main contains the root of the indexsync binary.
package main

import (
	"os"

	"github.com/indexsync/indexsync/cmd"
	"github.com/indexsync/indexsync/cmd/migrate"
	"github.com/indexsync/indexsync/cmd/run"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	runCmd := run.NewRunCommand()
	rootCmd.AddCommand(runCmd)

	recoverCmd := run.NewRecoverCommand()
	rootCmd.AddCommand(recoverCmd)

	searchCmd := run.NewSearchCommand()
	rootCmd.AddCommand(searchCmd)

	migrateCmd := migrate.NewMigrateCommand()
	rootCmd.AddCommand(migrateCmd)

	versionCmd := cmd.NewVersionCommand()
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
