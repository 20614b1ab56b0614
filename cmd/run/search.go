package run

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/indexer/families"
	"github.com/indexsync/indexsync/pkg/search"
)

const (
	userFlag       = "user"
	superAdminFlag = "super-admin"
	fieldFlag      = "field"
	valueFlag      = "value"
)

// NewSearchCommand returns the command querying an index on behalf of a user.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <index>",
		Short: "Search an index as a user",
		Long: `Search an index as a user. Documents of access-controlled indices are returned only
when the user, one of their groups, or anyone may browse their project. Hits are
printed as JSON lines.`,
		RunE: runSearch,
		Args: cobra.ExactArgs(1),
	}

	addConfigFlags(cmd)
	flags := cmd.Flags()
	flags.String(userFlag, "", "the uuid of the user searching, anonymous when empty")
	flags.Bool(superAdminFlag, false, "search as a super-admin, who sees every document")
	flags.String(fieldFlag, "", "restrict the hits to documents whose field equals --value")
	flags.String(valueFlag, "", "the value of --field")
	cmd.MarkFlagsRequiredTogether(fieldFlag, valueFlag)
	cmd.PreRun = bindConfigFlags

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, serverCtx, err := newServerContext()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	index := args[0]

	defs := families.Definitions(cfg.Search.Shards, cfg.Search.Replicas)
	if !slices.ContainsFunc(defs, func(def search.IndexDefinition) bool { return def.Name == index }) {
		return fmt.Errorf("unknown index '%s'", index)
	}

	closeComponents, err := serverCtx.Prepare(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeComponents()

	if err := serverCtx.Indexers.IndexOnStartup(ctx); err != nil {
		return fmt.Errorf("failed to index on startup: %w", err)
	}

	flags := cmd.Flags()
	userUUID, _ := flags.GetString(userFlag)
	superAdmin, _ := flags.GetBool(superAdminFlag)
	field, _ := flags.GetString(fieldFlag)
	value, _ := flags.GetString(valueFlag)

	var filter search.ParentFilter
	if slices.Contains(families.AccessControlledIndices(defs), index) {
		resolver, err := authorization.NewPrincipalResolver(serverCtx.Datastore, cfg.PrincipalCache.Limit, cfg.PrincipalCache.TTL)
		if err != nil {
			return err
		}
		defer resolver.Close()

		principal, err := resolver.Resolve(ctx, userUUID, superAdmin)
		if err != nil {
			return err
		}
		filter = authorization.NewFilter(principal)
	}

	var q *search.TermQuery
	if field != "" {
		q = search.Term(field, value)
	}

	hits, err := serverCtx.Index.Search(ctx, index, q, filter)
	if err != nil {
		return fmt.Errorf("search %s: %w", index, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, hit := range hits {
		if err := enc.Encode(map[string]any{"id": hit.ID, "fields": hit.Fields}); err != nil {
			return err
		}
	}
	return nil
}
