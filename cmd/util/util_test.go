package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestMustBindPFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("search-engine", "memory", "")
	MustBindPFlag("search.engine", flags.Lookup("search-engine"))
	require.Equal(t, "memory", viper.GetString("search.engine"))

	require.NoError(t, flags.Parse([]string{"--search-engine", "elasticsearch"}))
	require.Equal(t, "elasticsearch", viper.GetString("search.engine"))

	require.Panics(t, func() {
		MustBindPFlag("missing", flags.Lookup("missing"))
	})
}

func TestMustBindEnv(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("INDEXSYNC_LOG_LEVEL", "debug")
	MustBindEnv("log.level", "INDEXSYNC_LOG_LEVEL")
	require.Equal(t, "debug", viper.GetString("log.level"))

	require.Panics(t, func() {
		MustBindEnv()
	})
}

func TestPrepareTempConfigFile(t *testing.T) {
	PrepareTempConfigFile(t, "log:\n  level: warn\n")

	content, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".indexsync", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "log:\n  level: warn\n", string(content))
}
