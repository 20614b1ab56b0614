// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	datastoreEngineFlag = "datastore-engine"
	datastoreEngineConf = "datastore.engine"
	datastoreURIFlag    = "datastore-uri"
	datastoreURIConf    = "datastore.uri"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with INDEXSYNC, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("INDEXSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/indexsync", "$HOME/.indexsync", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetDefault(datastoreEngineFlag, "")
	viper.SetDefault(datastoreURIFlag, "")
	err := viper.ReadInConfig()
	if err == nil {
		viper.SetDefault(datastoreEngineFlag, viper.Get(datastoreEngineConf))
		viper.SetDefault(datastoreURIFlag, viper.Get(datastoreURIConf))
	}

	return &cobra.Command{
		Use:   "indexsync",
		Short: "Keeps search indices in sync with a relational database",
		Long: `Keeps search indices in sync with a relational database.

Every business mutation enqueues a change item in the same transaction. indexsync
drains the change queue into the search backend, propagates project permissions to
authorization documents and recovers the items left behind by failed indexations.`,
	}
}
