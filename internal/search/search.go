// Package search mirrors menu items into an Elasticsearch index and answers
// substring queries against it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

const maxHits = 10000

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "long"},
			"name":        map[string]any{"type": "wildcard"},
			"description": map[string]any{"type": "wildcard"},
			"category":    map[string]any{"type": "keyword"},
		},
	},
}

type document struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

type ESIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewESIndex(es *elasticsearch.Client, index string) *ESIndex {
	return &ESIndex{ES: es, Index: index}
}

func responseError(op string, status string, body io.Reader) error {
	b, _ := io.ReadAll(body)
	return fmt.Errorf("search: %s: %s: %s", op, status, strings.TrimSpace(string(b)))
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (s *ESIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.ES.Indices.Exists([]string{s.Index}, s.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(indexMapping); err != nil {
		return err
	}
	res, err = s.ES.Indices.Create(s.Index,
		s.ES.Indices.Create.WithContext(ctx),
		s.ES.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		return fmt.Errorf("search: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.Status(), res.Body)
	}
	return nil
}

func (s *ESIndex) IndexItem(ctx context.Context, item models.Item) error {
	doc := document{ID: item.ID, Name: item.Name, Description: item.Description}
	if item.Category != nil {
		doc.Category = item.Category.Name
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := s.ES.Index(s.Index, &buf,
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(item.ID), 10)),
		s.ES.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("search: index item %d: %w", item.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index item", res.Status(), res.Body)
	}
	return nil
}

// Reindex pushes every given item into the index.
func (s *ESIndex) Reindex(ctx context.Context, items []models.Item) error {
	if err := s.EnsureIndex(ctx); err != nil {
		return err
	}
	for _, it := range items {
		if err := s.IndexItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func wildcardQuery(q string) map[string]any {
	pattern := "*" + wildcardEscaper.Replace(q) + "*"
	clause := func(field string) map[string]any {
		return map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		}
	}
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should":               []any{clause("name"), clause("description")},
				"minimum_should_match": 1,
			},
		},
		"sort":    []any{map[string]any{"id": "asc"}},
		"size":    maxHits,
		"_source": []string{"id"},
	}
}

// Search returns the ids of items whose name or description contains q,
// ignoring case, ordered by id.
func (s *ESIndex) Search(ctx context.Context, q string) ([]uint, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wildcardQuery(q)); err != nil {
		return nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("query", res.Status(), res.Body)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}
