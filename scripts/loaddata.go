// Use: seed a migrated datastore, leaving every change item in the queue:
// go run ./scripts/loaddata.go sqlite 'file:indexsync.db' 1000
//
// then drain it with: indexsync recover --datastore-uri 'file:indexsync.db'

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/mysql"
	"github.com/indexsync/indexsync/pkg/storage/postgres"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
)

const (
	usersPerProject      = 3
	componentsPerProject = 5
	rulesPerProfile      = 20
	groups               = 10
)

var (
	qualifiers = []string{"DIR", "FIL", "UTS"}
	metrics    = []string{"ncloc", "coverage", "bugs", "vulnerabilities", "code_smells"}
	severities = []string{"INFO", "MINOR", "MAJOR", "CRITICAL", "BLOCKER"}
	languages  = []string{"go", "java", "py"}
)

func main() {
	if len(os.Args) != 4 {
		log.Panic("usage: loaddata <engine> <uri> <projects>")
	}
	argEngine := os.Args[1]
	argConnectionString := os.Args[2]
	argTotalProjects, err := strconv.Atoi(os.Args[3])
	if err != nil {
		log.Panic(err)
	}

	cfg := sqlcommon.NewConfig()

	var ds storage.Datastore
	switch argEngine {
	case "sqlite":
		ds, err = sqlite.New(argConnectionString, cfg)
	case "postgres":
		ds, err = postgres.New(argConnectionString, cfg)
	case "mysql":
		ds, err = mysql.New(argConnectionString, cfg)
	default:
		log.Panic("unknown database")
	}
	if err != nil {
		log.Panic(err)
	}
	defer ds.Close()

	ctx := context.Background()

	groupIDs, err := createGroups(ctx, ds)
	if err != nil {
		log.Panic(err)
	}

	if err := createProjects(ctx, ds, argTotalProjects, groupIDs); err != nil {
		log.Panic(err)
	}

	if err := createRules(ctx, ds); err != nil {
		log.Panic(err)
	}

	pending, err := ds.CountQueueItems(ctx)
	if err != nil {
		log.Panic(err)
	}
	log.Printf("%d change items pending", pending)
}

func newID() string {
	return ulid.Make().String()
}

func createGroups(ctx context.Context, ds storage.Datastore) ([]string, error) {
	defer timeTrack(time.Now(), "createGroups")

	ids := make([]string, 0, groups)
	for i := 0; i < groups; i++ {
		id := newID()
		if err := ds.CreateGroup(ctx, storage.Group{UUID: id, Name: fmt.Sprintf("group-%d", i)}); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func createProjects(ctx context.Context, ds storage.Datastore, total int, groupIDs []string) error {
	defer timeTrack(time.Now(), "createProjects")
	log.Printf("creating %d projects", total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := 0; i < total; i++ {
		g.Go(func() error {
			return createProject(ctx, ds, i, groupIDs)
		})
	}

	return g.Wait()
}

func createProject(ctx context.Context, ds storage.Datastore, i int, groupIDs []string) error {
	projectID := newID()
	// one project in ten is public
	private := i%10 != 0

	if _, err := ds.CreateProject(ctx, storage.Project{UUID: projectID, Key: fmt.Sprintf("project-%d", i), Name: fmt.Sprintf("Project %d", i), Private: private}); err != nil {
		return err
	}
	if !private {
		if _, err := ds.AddGroupPermission(ctx, projectID, "", storage.RoleBrowse); err != nil {
			return err
		}
	}

	for u := 0; u < usersPerProject; u++ {
		userID := newID()
		if err := ds.CreateUser(ctx, storage.User{UUID: userID, Login: fmt.Sprintf("user-%d-%d", i, u), Active: true}); err != nil {
			return err
		}
		if _, err := ds.AddUserPermission(ctx, projectID, userID, storage.RoleBrowse); err != nil {
			return err
		}
		if err := ds.AddGroupMember(ctx, groupIDs[(i+u)%len(groupIDs)], userID); err != nil {
			return err
		}
	}

	if _, err := ds.AddGroupPermission(ctx, projectID, groupIDs[i%len(groupIDs)], storage.RoleBrowse); err != nil {
		return err
	}

	for c := 0; c < componentsPerProject; c++ {
		component := storage.Component{
			UUID:        newID(),
			ProjectUUID: projectID,
			Key:         fmt.Sprintf("project-%d:src/file%d", i, c),
			Name:        fmt.Sprintf("file%d", c),
			Qualifier:   qualifiers[c%len(qualifiers)],
			Path:        fmt.Sprintf("src/file%d", c),
		}
		if _, err := ds.UpsertComponent(ctx, component); err != nil {
			return err
		}
	}

	for _, metric := range metrics {
		if _, err := ds.SetMeasure(ctx, projectID, metric, rand.Float64()*100); err != nil {
			return err
		}
	}

	return nil
}

func createRules(ctx context.Context, ds storage.Datastore) error {
	defer timeTrack(time.Now(), "createRules")

	for _, language := range languages {
		profileID := newID()
		if err := ds.CreateQualityProfile(ctx, storage.QualityProfile{UUID: profileID, Name: "Sonar way", Language: language}); err != nil {
			return err
		}

		for r := 0; r < rulesPerProfile; r++ {
			ruleID := newID()
			severity := severities[r%len(severities)]
			rule := storage.Rule{UUID: ruleID, Key: fmt.Sprintf("%s:S%d", language, r), Name: fmt.Sprintf("Rule %d", r), Language: language, Severity: severity}
			if err := ds.CreateRule(ctx, rule); err != nil {
				return err
			}
			if _, err := ds.ActivateRule(ctx, storage.ActiveRule{UUID: newID(), ProfileUUID: profileID, RuleUUID: ruleID, Severity: severity}); err != nil {
				return err
			}
		}
	}

	return nil
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Printf("%s took %s", name, elapsed)
}
