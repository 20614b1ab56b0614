// Package elastic implements search.Index on Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	elasticsearch "github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/retryablehttp"
	"github.com/indexsync/indexsync/pkg/search"
)

var tracer = otel.Tracer("indexsync/pkg/search/elastic")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "elastic."+name)
}

const (
	// MetadataIndex stores the initialization flags and definition hashes.
	MetadataIndex = "metadatas"

	// RelationField mirrors the join relation of a document so that authorization
	// documents can be excluded from searches.
	RelationField = "docRelation"

	// maxHits bounds the hits of a single search.
	maxHits = 10000
)

// Config defines the connection to an Elasticsearch cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	APIKey    string

	// Timeout bounds every request.
	Timeout time.Duration
	// MaxRetries is the number of retries of connection errors and 5xx responses.
	MaxRetries int
	// Replicas is restored at the end of a large bulk session.
	Replicas int

	// Transport is the base round tripper, mostly for tests.
	Transport http.RoundTripper
	Logger    logger.Logger
}

// Index is a search.Index backed by Elasticsearch.
type Index struct {
	client   *elasticsearch.Client
	timeout  time.Duration
	replicas int
	logger   logger.Logger
}

var _ search.Index = (*Index)(nil)

// New creates a client. It does not contact the cluster, see Ping and WaitReady.
func New(cfg Config) (*Index, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch: no addresses configured")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		APIKey:       cfg.APIKey,
		Transport:    retryablehttp.NewTransport(cfg.MaxRetries, cfg.Transport, cfg.Logger),
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: create client: %w", err)
	}

	return &Index{
		client:   client,
		timeout:  cfg.Timeout,
		replicas: cfg.Replicas,
		logger:   cfg.Logger,
	}, nil
}

// WaitReady pings the cluster with an exponential backoff until it answers or
// maxElapsed passes.
func (e *Index) WaitReady(ctx context.Context, maxElapsed time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed
	attempt := 1
	return backoff.Retry(func() error {
		err := e.Ping(ctx)
		if err != nil {
			e.logger.Info("waiting for elasticsearch", zap.Int("attempt", attempt), zap.Error(err))
			attempt++
		}
		return err
	}, backoff.WithContext(policy, ctx))
}

func (e *Index) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.timeout)
}

// responseError reads the error of a failed response.
func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	reason := gjson.GetBytes(body, "error.reason").String()
	if reason == "" {
		reason = strings.TrimSpace(string(body))
	}
	if gjson.GetBytes(body, "error.type").String() == "index_not_found_exception" {
		return fmt.Errorf("elasticsearch: %s: %s: %w", op, reason, search.ErrIndexNotFound)
	}
	return fmt.Errorf("elasticsearch: %s returned %s: %s", op, res.Status(), reason)
}

func readBody(res *esapi.Response) ([]byte, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: read response: %w", err)
	}
	return body, nil
}

func (e *Index) Ping(ctx context.Context) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Info(e.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: info call failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("info", res)
	}
	return nil
}

func (e *Index) Exists(ctx context.Context, index string) (bool, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Indices.Exists([]string{index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("elasticsearch: exists %s: %w", index, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, responseError("exists", res)
	}
}

// createBody renders the settings and mappings of def. Protected indices get a join
// field whose parents are the authorization documents.
func createBody(def search.IndexDefinition) ([]byte, error) {
	properties := maps.Clone(def.Mapping)
	if properties == nil {
		properties = map[string]any{}
	}
	properties[RelationField] = map[string]any{"type": "keyword"}
	if def.AccessControlled() {
		properties[def.JoinField()] = map[string]any{
			"type":      "join",
			"relations": map[string]any{search.RelationAuth: def.ChildRelation},
		}
	}

	shards := def.Shards
	if shards <= 0 {
		shards = 1
	}

	return json.Marshal(map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"number_of_shards":   shards,
				"number_of_replicas": def.Replicas,
			},
		},
		"mappings": map[string]any{
			"dynamic":    false,
			"properties": properties,
		},
	})
}

func (e *Index) CreateIndex(ctx context.Context, def search.IndexDefinition) error {
	ctx, span := startTrace(ctx, "CreateIndex")
	defer span.End()

	body, err := createBody(def)
	if err != nil {
		return err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Indices.Create(def.Name,
		e.client.Indices.Create.WithBody(bytes.NewReader(body)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: create index %s: %w", def.Name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (e *Index) DeleteIndex(ctx context.Context, index string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Indices.Delete([]string{index},
		e.client.Indices.Delete.WithIgnoreUnavailable(true),
		e.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete index", res)
	}
	return nil
}

// metadataID maps a metadata key to a document id without path separators.
func metadataID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}

func (e *Index) Metadata(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Get(MetadataIndex, metadataID(key), e.client.Get.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("elasticsearch: get metadata %s: %w", key, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if res.IsError() {
		return "", false, responseError("get metadata", res)
	}

	body, err := readBody(res)
	if err != nil {
		return "", false, err
	}
	value := gjson.GetBytes(body, "_source.value")
	return value.String(), value.Exists(), nil
}

func (e *Index) SetMetadata(ctx context.Context, key, value string) error {
	body, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Index(MetadataIndex, bytes.NewReader(body),
		e.client.Index.WithDocumentID(metadataID(key)),
		e.client.Index.WithRefresh("true"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: set metadata %s: %w", key, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("set metadata", res)
	}
	return nil
}

// source renders the stored document, adding the join field of protected documents.
func source(doc *search.Document) map[string]any {
	fields := maps.Clone(doc.Fields)
	if fields == nil {
		fields = map[string]any{}
	}
	if doc.Relation != "" {
		fields[RelationField] = doc.Relation
		if doc.Parent == "" {
			fields[search.JoinField(doc.Index)] = doc.Relation
		} else {
			fields[search.JoinField(doc.Index)] = map[string]any{"name": doc.Relation, "parent": doc.Parent}
		}
	}
	return fields
}

// bulkBody renders reqs as NDJSON.
func bulkBody(reqs []search.BulkRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, req := range reqs {
		meta := map[string]any{"_index": req.Index, "_id": req.ID}
		if req.Routing != "" {
			meta["routing"] = req.Routing
		}

		switch req.Op {
		case search.OpIndex:
			if req.Document == nil {
				return nil, fmt.Errorf("%s/%s: missing document: %w", req.Index, req.ID, search.ErrDocumentRejected)
			}
			if err := enc.Encode(map[string]any{"index": meta}); err != nil {
				return nil, err
			}
			if err := enc.Encode(source(req.Document)); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", req.Index, req.ID, err)
			}
		case search.OpDelete:
			if err := enc.Encode(map[string]any{"delete": meta}); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported operation %s: %w", req.Op, search.ErrDocumentRejected)
		}
	}
	return buf.Bytes(), nil
}

// parseBulkResponse maps the items of a bulk response to the requests. A delete of
// a missing document answers 404 without error and counts as a success.
func parseBulkResponse(reqs []search.BulkRequest, body []byte) ([]search.ItemResult, error) {
	items := gjson.GetBytes(body, "items").Array()
	if len(items) != len(reqs) {
		return nil, fmt.Errorf("elasticsearch: bulk returned %d items for %d requests", len(items), len(reqs))
	}

	results := make([]search.ItemResult, 0, len(reqs))
	for i, req := range reqs {
		result := search.ItemResult{Index: req.Index, ID: req.ID}

		item := items[i].Get(req.Op.String())
		if cause := item.Get("error"); cause.Exists() {
			reason := cause.Get("reason").String()
			if reason == "" {
				reason = cause.String()
			}
			err := fmt.Errorf("%s: %s: %w", cause.Get("type").String(), reason, search.ErrDocumentRejected)
			if cause.Get("type").String() == "index_not_found_exception" {
				err = fmt.Errorf("%s: %w", reason, search.ErrIndexNotFound)
			}
			result.Err = err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Index) Bulk(ctx context.Context, reqs []search.BulkRequest, refresh bool) ([]search.ItemResult, error) {
	ctx, span := startTrace(ctx, "Bulk")
	span.SetAttributes(attribute.Int("requests", len(reqs)))
	defer span.End()

	if len(reqs) == 0 {
		return nil, nil
	}

	body, err := bulkBody(reqs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	refreshParam := "false"
	if refresh {
		refreshParam = "true"
	}
	res, err := e.client.Bulk(bytes.NewReader(body),
		e.client.Bulk.WithRefresh(refreshParam),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: bulk: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("bulk", res)
	}

	respBody, err := readBody(res)
	if err != nil {
		return nil, err
	}
	return parseBulkResponse(reqs, respBody)
}

func termClause(q *search.TermQuery) map[string]any {
	if q == nil {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{"term": map[string]any{q.Field: q.Value}}
}

func (e *Index) DeleteByQuery(ctx context.Context, index string, q *search.TermQuery) (int64, error) {
	ctx, span := startTrace(ctx, "DeleteByQuery")
	span.SetAttributes(attribute.String("index", index))
	defer span.End()

	body, err := json.Marshal(map[string]any{"query": termClause(q)})
	if err != nil {
		return 0, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.DeleteByQuery([]string{index}, bytes.NewReader(body),
		e.client.DeleteByQuery.WithRefresh(true),
		e.client.DeleteByQuery.WithConflicts("proceed"),
		e.client.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("elasticsearch: delete by query on %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, responseError("delete by query", res)
	}

	respBody, err := readBody(res)
	if err != nil {
		return 0, err
	}
	if failures := gjson.GetBytes(respBody, "failures"); len(failures.Array()) > 0 {
		return 0, fmt.Errorf("elasticsearch: delete by query on %s: %s", index, failures.Array()[0].Get("cause.reason").String())
	}
	return gjson.GetBytes(respBody, "deleted").Int(), nil
}

func (e *Index) putSettings(ctx context.Context, indices []string, settings map[string]any) error {
	body, err := json.Marshal(map[string]any{"index": settings})
	if err != nil {
		return err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Indices.PutSettings(bytes.NewReader(body),
		e.client.Indices.PutSettings.WithIndex(indices...),
		e.client.Indices.PutSettings.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: put settings: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("put settings", res)
	}
	return nil
}

func (e *Index) refresh(ctx context.Context, indices []string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Indices.Refresh(
		e.client.Indices.Refresh.WithIndex(indices...),
		e.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: refresh: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("refresh", res)
	}
	return nil
}

func (e *Index) PrepareBulk(ctx context.Context, indices []string, large bool) (func(context.Context) error, error) {
	if !large || len(indices) == 0 {
		return func(context.Context) error { return nil }, nil
	}

	err := e.putSettings(ctx, indices, map[string]any{
		"refresh_interval":   "-1",
		"number_of_replicas": 0,
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		err := e.putSettings(ctx, indices, map[string]any{
			"refresh_interval":   "1s",
			"number_of_replicas": e.replicas,
		})
		if err != nil {
			return err
		}
		return e.refresh(ctx, indices)
	}, nil
}

// document rebuilds a search.Document from a stored hit or get response.
func document(index string, hit gjson.Result) search.Document {
	doc := search.Document{
		Index:   index,
		ID:      hit.Get("_id").String(),
		Routing: hit.Get("_routing").String(),
		Fields:  map[string]any{},
	}

	raw := hit.Get("_source").Raw
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &doc.Fields)
	}

	doc.Relation, _ = doc.Fields[RelationField].(string)
	delete(doc.Fields, RelationField)

	join := gjson.Get(raw, search.JoinField(index))
	if join.IsObject() {
		doc.Parent = join.Get("parent").String()
	}
	delete(doc.Fields, search.JoinField(index))

	return doc
}

func (e *Index) Get(ctx context.Context, index, id, routing string) (search.Document, bool, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	opts := []func(*esapi.GetRequest){e.client.Get.WithContext(ctx)}
	if routing != "" {
		opts = append(opts, e.client.Get.WithRouting(routing))
	}

	res, err := e.client.Get(index, id, opts...)
	if err != nil {
		return search.Document{}, false, fmt.Errorf("elasticsearch: get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	body, err := readBody(res)
	if err != nil {
		return search.Document{}, false, err
	}

	if res.StatusCode == http.StatusNotFound {
		if gjson.GetBytes(body, "error.type").String() == "index_not_found_exception" {
			return search.Document{}, false, fmt.Errorf("%s: %w", index, search.ErrIndexNotFound)
		}
		return search.Document{}, false, nil
	}
	if res.IsError() {
		return search.Document{}, false, fmt.Errorf("elasticsearch: get %s/%s returned %s", index, id, res.Status())
	}

	return document(index, gjson.ParseBytes(body)), true, nil
}

// searchQuery combines q with the exclusion of authorization documents and filter.
func searchQuery(q *search.TermQuery, filter search.ParentFilter) map[string]any {
	must := []any{termClause(q)}
	if filter != nil && !filter.MatchAll() {
		must = append(must, map[string]any{
			"has_parent": map[string]any{
				"parent_type": search.RelationAuth,
				"query":       filter.Source(),
			},
		})
	}

	return map[string]any{
		"bool": map[string]any{
			"filter": must,
			"must_not": []any{
				map[string]any{"term": map[string]any{RelationField: search.RelationAuth}},
			},
		},
	}
}

func (e *Index) Search(ctx context.Context, index string, q *search.TermQuery, filter search.ParentFilter) ([]search.Hit, error) {
	ctx, span := startTrace(ctx, "Search")
	span.SetAttributes(attribute.String("index", index))
	defer span.End()

	body, err := json.Marshal(map[string]any{
		"query": searchQuery(q, filter),
		"sort":  []any{map[string]any{"_doc": "asc"}},
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Search(
		e.client.Search.WithIndex(index),
		e.client.Search.WithBody(bytes.NewReader(body)),
		e.client.Search.WithSize(maxHits),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	respBody, err := readBody(res)
	if err != nil {
		return nil, err
	}

	hits := []search.Hit{}
	gjson.GetBytes(respBody, "hits.hits").ForEach(func(_, value gjson.Result) bool {
		doc := document(index, value)
		hits = append(hits, search.Hit{
			Index:   index,
			ID:      doc.ID,
			Routing: doc.Routing,
			Fields:  doc.Fields,
		})
		return true
	})
	return hits, nil
}

func (e *Index) Count(ctx context.Context, index string, q *search.TermQuery) (int64, error) {
	body, err := json.Marshal(map[string]any{"query": termClause(q)})
	if err != nil {
		return 0, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	res, err := e.client.Count(
		e.client.Count.WithIndex(index),
		e.client.Count.WithBody(bytes.NewReader(body)),
		e.client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("elasticsearch: count %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, responseError("count", res)
	}

	respBody, err := readBody(res)
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(respBody, "count").Int(), nil
}
