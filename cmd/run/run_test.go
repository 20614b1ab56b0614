package run

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/cmd"
	"github.com/indexsync/indexsync/cmd/util"
	"github.com/indexsync/indexsync/internal/config"
	"github.com/indexsync/indexsync/pkg/indexer/project"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
	storagefixtures "github.com/indexsync/indexsync/pkg/testfixtures/storage"
)

// prepareDatastore returns the uri of a migrated sqlite database and a datastore
// connected to it.
func prepareDatastore(t *testing.T) (string, storage.Datastore) {
	t.Helper()

	uri := storagefixtures.RunDatastoreTestContainer(t, "sqlite").GetConnectionURI(true)
	ds, err := sqlite.New(uri, sqlcommon.NewConfig())
	require.NoError(t, err)
	t.Cleanup(ds.Close)

	return uri, ds
}

func createPrivateProject(t *testing.T, ds storage.Datastore, allowedUser string) string {
	t.Helper()
	ctx := context.Background()

	id := uuid.NewString()
	_, err := ds.CreateProject(ctx, storage.Project{UUID: id, Key: "key-" + id, Name: "project", Private: true})
	require.NoError(t, err)

	require.NoError(t, ds.CreateUser(ctx, storage.User{UUID: allowedUser, Login: "login-" + allowedUser, Active: true}))
	_, err = ds.AddUserPermission(ctx, id, allowedUser, storage.RoleBrowse)
	require.NoError(t, err)

	return id
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	util.PrepareTempConfigDir(t)
	t.Cleanup(viper.Reset)

	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(NewRecoverCommand(), NewSearchCommand())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadConfigDefaults(t *testing.T) {
	util.PrepareTempConfigDir(t)
	t.Cleanup(viper.Reset)
	cmd.NewRootCommand()

	cfg, err := ReadConfig()
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestReadConfigFileAndEnv(t *testing.T) {
	util.PrepareTempConfigFile(t, `datastore:
  engine: postgres
  uri: postgres://localhost:5432/indexsync
search:
  engine: elasticsearch
  addresses:
    - http://localhost:9200
  apiKey: secret
recovery:
  loopLimit: 50
  circuitBreakerRatio: 0.5
`)
	t.Cleanup(viper.Reset)
	t.Setenv("INDEXSYNC_LOG_LEVEL", "debug")
	t.Setenv("INDEXSYNC_RECOVERY_MIN_AGE", "1m")

	runCmd := NewRunCommand()
	runCmd.Run = func(command *cobra.Command, _ []string) {}
	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(runCmd)
	rootCmd.SetArgs([]string{"run", "--search-shards", "3"})
	require.NoError(t, rootCmd.Execute())

	cfg, err := ReadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Verify())

	require.Equal(t, "postgres", cfg.Datastore.Engine)
	require.Equal(t, "postgres://localhost:5432/indexsync", cfg.Datastore.URI)
	require.Equal(t, "elasticsearch", cfg.Search.Engine)
	require.Equal(t, []string{"http://localhost:9200"}, cfg.Search.Addresses)
	require.Equal(t, "secret", cfg.Search.APIKey)
	require.Equal(t, 3, cfg.Search.Shards)
	require.Equal(t, 50, cfg.Recovery.LoopLimit)
	require.InDelta(t, 0.5, cfg.Recovery.CircuitBreakerRatio, 0.0001)
	require.Equal(t, time.Minute, cfg.Recovery.MinAge)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestRunServesHealthAndRecoversQueue(t *testing.T) {
	uri, ds := prepareDatastore(t)
	createPrivateProject(t, ds, uuid.NewString())

	pending, err := ds.CountQueueItems(context.Background())
	require.NoError(t, err)
	require.Positive(t, pending)

	port, release := config.TCPRandomPort()
	release()

	cfg := config.MustDefaultConfig()
	cfg.Datastore.URI = uri
	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = fmt.Sprintf("localhost:%d", port)
	cfg.Recovery.Enabled = true
	cfg.Recovery.InitialDelay = 10 * time.Millisecond
	cfg.Recovery.Delay = 10 * time.Millisecond
	cfg.Recovery.MinAge = 0
	require.NoError(t, cfg.Verify())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverCtx := &ServerContext{Logger: logger.NewNoopLogger()}
	done := make(chan error, 1)
	go func() {
		done <- serverCtx.Run(ctx, cfg)
	}()

	require.Eventually(t, func() bool {
		res, err := http.Get(fmt.Sprintf("http://localhost:%d/healthz", port))
		if err != nil {
			return false
		}
		defer res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond)

	res, err := http.Get(fmt.Sprintf("http://localhost:%d/metrics", port))
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "go_goroutines")

	require.Eventually(t, func() bool {
		n, err := ds.CountQueueItems(context.Background())
		return err == nil && n == 0
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunFailsOnUnsupportedEngines(t *testing.T) {
	uri, _ := prepareDatastore(t)

	cfg := config.MustDefaultConfig()
	cfg.Datastore.URI = uri
	cfg.Search.Engine = "solr"

	serverCtx := &ServerContext{Logger: logger.NewNoopLogger()}
	require.ErrorContains(t, serverCtx.Run(context.Background(), cfg), "search engine 'solr' is unsupported")

	cfg.Datastore.Engine = "oracle"
	require.ErrorContains(t, serverCtx.Run(context.Background(), cfg), "storage engine 'oracle' is unsupported")
}

func TestRecoverCommand(t *testing.T) {
	uri, ds := prepareDatastore(t)
	createPrivateProject(t, ds, uuid.NewString())

	out, err := execute(t, "recover",
		"--datastore-uri", uri,
		"--log-level", "none",
	)
	require.NoError(t, err)
	require.Contains(t, out, "(0 failures)")
	require.Contains(t, out, " 0 items pending")

	pending, err := ds.CountQueueItems(context.Background())
	require.NoError(t, err)
	require.Zero(t, pending)
}

func TestRecoverCommandKeepsYoungItems(t *testing.T) {
	uri, ds := prepareDatastore(t)
	createPrivateProject(t, ds, uuid.NewString())

	out, err := execute(t, "recover",
		"--datastore-uri", uri,
		"--log-level", "none",
		"--min-age", "1h",
	)
	require.NoError(t, err)
	require.Contains(t, out, "indexed 0 items")

	pending, err := ds.CountQueueItems(context.Background())
	require.NoError(t, err)
	require.Positive(t, pending)
}

func TestSearchCommand(t *testing.T) {
	uri, ds := prepareDatastore(t)
	allowed := uuid.NewString()
	projectUUID := createPrivateProject(t, ds, allowed)

	hitIDs := func(out string) []string {
		var ids []string
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			if line == "" {
				continue
			}
			var hit struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(line), &hit))
			ids = append(ids, hit.ID)
		}
		return ids
	}

	t.Run("allowed_user", func(t *testing.T) {
		out, err := execute(t, "search", project.MeasuresIndex, "--datastore-uri", uri, "--log-level", "none", "--user", allowed)
		require.NoError(t, err)
		require.Equal(t, []string{projectUUID}, hitIDs(out))
	})

	t.Run("other_user", func(t *testing.T) {
		out, err := execute(t, "search", project.MeasuresIndex, "--datastore-uri", uri, "--log-level", "none", "--user", uuid.NewString())
		require.NoError(t, err)
		require.Empty(t, hitIDs(out))
	})

	t.Run("anonymous", func(t *testing.T) {
		out, err := execute(t, "search", project.MeasuresIndex, "--datastore-uri", uri, "--log-level", "none")
		require.NoError(t, err)
		require.Empty(t, hitIDs(out))
	})

	t.Run("super_admin", func(t *testing.T) {
		out, err := execute(t, "search", project.MeasuresIndex, "--datastore-uri", uri, "--log-level", "none", "--super-admin")
		require.NoError(t, err)
		require.Equal(t, []string{projectUUID}, hitIDs(out))
	})

	t.Run("term_query", func(t *testing.T) {
		out, err := execute(t, "search", project.MeasuresIndex, "--datastore-uri", uri, "--log-level", "none", "--super-admin",
			"--field", "key", "--value", "unknown")
		require.NoError(t, err)
		require.Empty(t, hitIDs(out))
	})

	t.Run("unknown_index", func(t *testing.T) {
		_, err := execute(t, "search", "issues", "--datastore-uri", uri, "--log-level", "none")
		require.ErrorContains(t, err, "unknown index 'issues'")
	})
}
