package elastic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/indexsync/indexsync/pkg/search"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type fakeCluster struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r recordedRequest)
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if f.handler != nil {
		f.handler(w, req)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

func (f *fakeCluster) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r recordedRequest)) (*Index, *fakeCluster) {
	t.Helper()

	cluster := &fakeCluster{handler: handler}
	server := httptest.NewServer(cluster)
	t.Cleanup(server.Close)

	idx, err := New(Config{Addresses: []string{server.URL}, Replicas: 2})
	require.NoError(t, err)
	return idx, cluster
}

type projectFilter struct {
	projects []string
}

func (f projectFilter) MatchAll() bool { return false }

func (f projectFilter) Match(parent map[string]any) bool { return true }

func (f projectFilter) Source() map[string]any {
	return map[string]any{"terms": map[string]any{"project": f.projects}}
}

func TestNewRequiresAddresses(t *testing.T) {
	_, err := New(Config{})
	require.ErrorContains(t, err, "no addresses")
}

func TestCreateBody(t *testing.T) {
	body, err := createBody(search.IndexDefinition{
		Name:          "components",
		Families:      []string{"components/component", "auth"},
		ChildRelation: "component",
		Shards:        3,
		Replicas:      1,
		Mapping:       map[string]any{"name": map[string]any{"type": "text"}},
	})
	require.NoError(t, err)

	require.Equal(t, int64(3), gjson.GetBytes(body, "settings.index.number_of_shards").Int())
	require.Equal(t, int64(1), gjson.GetBytes(body, "settings.index.number_of_replicas").Int())
	require.Equal(t, "text", gjson.GetBytes(body, "mappings.properties.name.type").String())
	require.Equal(t, "keyword", gjson.GetBytes(body, "mappings.properties.docRelation.type").String())
	require.Equal(t, "join", gjson.GetBytes(body, "mappings.properties.join_components.type").String())
	require.Equal(t, "component", gjson.GetBytes(body, "mappings.properties.join_components.relations.auth").String())

	body, err = createBody(search.IndexDefinition{Name: "rules"})
	require.NoError(t, err)
	require.False(t, gjson.GetBytes(body, "mappings.properties.join_rules").Exists())
	require.Equal(t, int64(1), gjson.GetBytes(body, "settings.index.number_of_shards").Int())
}

func TestBulkBody(t *testing.T) {
	body, err := bulkBody([]search.BulkRequest{
		search.IndexRequest(search.Document{
			Index: "components", ID: "auth_p1", Routing: "p1", Relation: search.RelationAuth,
			Fields: map[string]any{"allowAnyone": true},
		}),
		search.IndexRequest(search.Document{
			Index: "components", ID: "c1", Routing: "p1", Relation: "component", Parent: "auth_p1",
			Fields: map[string]any{"name": "main.go"},
		}),
		search.DeleteRequest("rules", "ar1", ""),
	})
	require.NoError(t, err)

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 5)

	require.Equal(t, "auth_p1", gjson.Get(lines[0], "index._id").String())
	require.Equal(t, "p1", gjson.Get(lines[0], "index.routing").String())
	require.Equal(t, "auth", gjson.Get(lines[1], "join_components").String())
	require.Equal(t, "auth", gjson.Get(lines[1], "docRelation").String())

	require.Equal(t, "component", gjson.Get(lines[3], "join_components.name").String())
	require.Equal(t, "auth_p1", gjson.Get(lines[3], "join_components.parent").String())
	require.Equal(t, "main.go", gjson.Get(lines[3], "name").String())

	require.Equal(t, "rules", gjson.Get(lines[4], "delete._index").String())
	require.False(t, gjson.Get(lines[4], "delete.routing").Exists())

	_, err = bulkBody([]search.BulkRequest{{Op: search.OpIndex, Index: "rules", ID: "x"}})
	require.ErrorIs(t, err, search.ErrDocumentRejected)
}

func TestParseBulkResponse(t *testing.T) {
	reqs := []search.BulkRequest{
		search.IndexRequest(search.Document{Index: "rules", ID: "ar1"}),
		search.IndexRequest(search.Document{Index: "rules", ID: "ar2"}),
		search.DeleteRequest("rules", "ar3", ""),
		search.IndexRequest(search.Document{Index: "gone", ID: "x"}),
	}
	body := []byte(`{"errors":true,"items":[
		{"index":{"_index":"rules","_id":"ar1","status":201}},
		{"index":{"_index":"rules","_id":"ar2","status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}},
		{"delete":{"_index":"rules","_id":"ar3","status":404,"result":"not_found"}},
		{"index":{"_index":"gone","_id":"x","status":404,"error":{"type":"index_not_found_exception","reason":"no such index [gone]"}}}
	]}`)

	results, err := parseBulkResponse(reqs, body)
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, search.ErrDocumentRejected)
	require.ErrorContains(t, results[1].Err, "failed to parse")
	require.NoError(t, results[2].Err)
	require.ErrorIs(t, results[3].Err, search.ErrIndexNotFound)

	_, err = parseBulkResponse(reqs, []byte(`{"items":[]}`))
	require.Error(t, err)
}

func TestBulk(t *testing.T) {
	idx, cluster := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		if r.Path == "/_bulk" {
			_, _ = w.Write([]byte(`{"items":[{"index":{"status":200}},{"delete":{"status":200}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	results, err := idx.Bulk(context.Background(), []search.BulkRequest{
		search.IndexRequest(search.Document{Index: "rules", ID: "ar1", Fields: map[string]any{"severity": "MAJOR"}}),
		search.DeleteRequest("rules", "ar2", ""),
	}, true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "ar1", results[0].ID)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)

	var bulk *recordedRequest
	for _, r := range cluster.Requests() {
		if r.Path == "/_bulk" {
			bulk = &r
		}
	}
	require.NotNil(t, bulk)
	require.Contains(t, bulk.Query, "refresh=true")
	require.Contains(t, bulk.Body, `"severity":"MAJOR"`)

	results, err = idx.Bulk(context.Background(), nil, false)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestBulkFailsWholeCallOnErrorResponse(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"illegal_argument_exception","reason":"malformed action"}}`))
	})

	results, err := idx.Bulk(context.Background(), []search.BulkRequest{search.DeleteRequest("rules", "ar1", "")}, false)
	require.ErrorContains(t, err, "malformed action")
	require.Nil(t, results)
}

func TestMetadata(t *testing.T) {
	idx, cluster := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		switch {
		case r.Method == http.MethodGet && r.Path == "/metadatas/_doc/initialized.auth":
			_, _ = w.Write([]byte(`{"_id":"initialized.auth","found":true,"_source":{"value":"true"}}`))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"found":false}`))
		default:
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	})
	ctx := context.Background()

	value, ok, err := idx.Metadata(ctx, "initialized.auth")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", value)

	_, ok, err = idx.Metadata(ctx, "initialized.rules/activeRule")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, idx.SetMetadata(ctx, "indexHash.rules", "abc"))
	last := cluster.Requests()[len(cluster.Requests())-1]
	require.Equal(t, "/metadatas/_doc/indexHash.rules", last.Path)
	require.Contains(t, last.Query, "refresh=true")
	require.JSONEq(t, `{"value":"abc"}`, last.Body)
}

func TestExists(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		if r.Path == "/rules" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	exists, err := idx.Exists(context.Background(), "rules")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = idx.Exists(context.Background(), "components")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestPrepareBulk(t *testing.T) {
	idx, cluster := newTestIndex(t, nil)
	ctx := context.Background()

	restore, err := idx.PrepareBulk(ctx, []string{"rules"}, false)
	require.NoError(t, err)
	require.NoError(t, restore(ctx))
	require.Empty(t, cluster.Requests())

	restore, err = idx.PrepareBulk(ctx, []string{"components", "projectmeasures"}, true)
	require.NoError(t, err)

	requests := cluster.Requests()
	require.Len(t, requests, 1)
	require.Equal(t, "/components,projectmeasures/_settings", requests[0].Path)
	require.Equal(t, "-1", gjson.Get(requests[0].Body, "index.refresh_interval").String())
	require.Equal(t, int64(0), gjson.Get(requests[0].Body, "index.number_of_replicas").Int())

	require.NoError(t, restore(ctx))
	requests = cluster.Requests()
	require.Len(t, requests, 3)
	require.Equal(t, "1s", gjson.Get(requests[1].Body, "index.refresh_interval").String())
	require.Equal(t, int64(2), gjson.Get(requests[1].Body, "index.number_of_replicas").Int())
	require.Equal(t, "/components,projectmeasures/_refresh", requests[2].Path)
}

func TestDeleteByQuery(t *testing.T) {
	idx, cluster := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = w.Write([]byte(`{"deleted":4,"failures":[]}`))
	})

	deleted, err := idx.DeleteByQuery(context.Background(), "rules", search.Term("ruleProfileUuid", "qp1"))
	require.NoError(t, err)
	require.Equal(t, int64(4), deleted)

	r := cluster.Requests()[0]
	require.Equal(t, "/rules/_delete_by_query", r.Path)
	require.Contains(t, r.Query, "conflicts=proceed")
	require.Equal(t, "qp1", gjson.Get(r.Body, "query.term.ruleProfileUuid").String())
}

func TestDeleteByQueryTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	idx, err := New(Config{Addresses: []string{server.URL}, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = idx.DeleteByQuery(context.Background(), "rules", search.Term("ruleProfileUuid", "qp1"))
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestSearchQuery(t *testing.T) {
	q := searchQuery(search.Term("project", "p1"), nil)
	raw, err := json.Marshal(q)
	require.NoError(t, err)

	require.Equal(t, "p1", gjson.GetBytes(raw, "bool.filter.0.term.project").String())
	require.Equal(t, "auth", gjson.GetBytes(raw, "bool.must_not.0.term.docRelation").String())
	require.False(t, gjson.GetBytes(raw, "bool.filter.1").Exists())

	q = searchQuery(nil, projectFilter{projects: []string{"p1"}})
	raw, err = json.Marshal(q)
	require.NoError(t, err)

	require.True(t, gjson.GetBytes(raw, "bool.filter.0.match_all").Exists())
	require.Equal(t, "auth", gjson.GetBytes(raw, "bool.filter.1.has_parent.parent_type").String())
	require.Equal(t, "p1", gjson.GetBytes(raw, "bool.filter.1.has_parent.query.terms.project.0").String())
}

func TestSearchAndGet(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		switch {
		case strings.HasSuffix(r.Path, "/_search"):
			_, _ = w.Write([]byte(`{"hits":{"hits":[
				{"_id":"c1","_routing":"p1","_source":{"name":"main.go","docRelation":"component","join_components":{"name":"component","parent":"auth_p1"}}}
			]}}`))
		case r.Path == "/components/_doc/c1":
			_, _ = w.Write([]byte(`{"_id":"c1","_routing":"p1","found":true,"_source":{"name":"main.go","docRelation":"component","join_components":{"name":"component","parent":"auth_p1"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"found":false}`))
		}
	})
	ctx := context.Background()

	hits, err := idx.Search(ctx, "components", nil, nil)
	require.NoError(t, err)
	require.Equal(t, []search.Hit{{
		Index: "components", ID: "c1", Routing: "p1",
		Fields: map[string]any{"name": "main.go"},
	}}, hits)

	doc, ok, err := idx.Get(ctx, "components", "c1", "p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, search.Document{
		Index: "components", ID: "c1", Routing: "p1",
		Relation: "component", Parent: "auth_p1",
		Fields: map[string]any{"name": "main.go"},
	}, doc)

	_, ok, err = idx.Get(ctx, "components", "c2", "p1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSearchIndexNotFound(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r recordedRequest) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception","reason":"no such index [rules]"}}`))
	})

	_, err := idx.Search(context.Background(), "rules", nil, nil)
	require.ErrorIs(t, err, search.ErrIndexNotFound)
}

func TestMetadataID(t *testing.T) {
	require.Equal(t, "initialized.components_component", metadataID("initialized.components/component"))
	require.Equal(t, "indexHash.rules", metadataID("indexHash.rules"))
}
