package migrate

import (
	"github.com/spf13/cobra"

	"github.com/indexsync/indexsync/cmd/util"
)

// bindRunFlags binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindRunFlags(command *cobra.Command, _ []string) {
	flags := command.Flags()

	util.MustBindPFlag(datastoreEngineFlag, flags.Lookup(datastoreEngineFlag))
	util.MustBindPFlag(datastoreURIFlag, flags.Lookup(datastoreURIFlag))
	util.MustBindPFlag(datastoreUsernameFlag, flags.Lookup(datastoreUsernameFlag))
	util.MustBindPFlag(datastorePasswordFlag, flags.Lookup(datastorePasswordFlag))
	util.MustBindPFlag(versionFlag, flags.Lookup(versionFlag))
	util.MustBindPFlag(timeoutFlag, flags.Lookup(timeoutFlag))
	util.MustBindPFlag(verboseMigrationFlag, flags.Lookup(verboseMigrationFlag))
	util.MustBindPFlag(logFormatFlag, flags.Lookup(logFormatFlag))
	util.MustBindEnv(logFormatFlag, "INDEXSYNC_LOG_FORMAT")
	util.MustBindPFlag(logLevelFlag, flags.Lookup(logLevelFlag))
	util.MustBindEnv(logLevelFlag, "INDEXSYNC_LOG_LEVEL")
}
