package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/AVIDS2/Astris-Blog/internal/config"
	"github.com/AVIDS2/Astris-Blog/internal/models"
)

// Elastic mirrors posts into an index used for the related-posts endpoint.
// The keyword search endpoint queries the relational store directly; the
// index only serves tag-overlap ranking.
type Elastic struct {
	Client *elasticsearch.Client
	Index  string
}

func NewElastic(cfg *config.Config) (*Elastic, error) {
	cfgES := elasticsearch.Config{
		Addresses: []string{cfg.ElasticAddr},
	}
	if cfg.ElasticUsername != "" {
		cfgES.Username = cfg.ElasticUsername
		cfgES.Password = cfg.ElasticPassword
	}
	client, err := elasticsearch.NewClient(cfgES)
	if err != nil {
		return nil, err
	}
	return &Elastic{Client: client, Index: "posts"}, nil
}

func (e *Elastic) EnsurePostsIndex(ctx context.Context) error {
	res, err := e.Client.Indices.Exists([]string{e.Index})
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":     map[string]string{"type": "text"},
				"summary":   map[string]string{"type": "text"},
				"tags":      map[string]string{"type": "keyword"},
				"slug":      map[string]string{"type": "keyword"},
				"published": map[string]string{"type": "boolean"},
			},
		},
	}
	b, _ := json.Marshal(mapping)
	createRes, err := e.Client.Indices.Create(e.Index, e.Client.Indices.Create.WithBody(bytes.NewReader(b)))
	if err != nil {
		return err
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}
	return nil
}

// IndexPost writes the searchable projection of a post. Called after every
// create and update so the mirror tracks the store.
func (e *Elastic) IndexPost(ctx context.Context, p *models.Post) error {
	tagNames := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tagNames = append(tagNames, t.Name)
	}
	doc := map[string]interface{}{
		"id":        p.ID,
		"title":     p.Title,
		"slug":      p.Slug,
		"tags":      tagNames,
		"published": p.IsPublished,
	}
	if p.Summary != nil {
		doc["summary"] = *p.Summary
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: e.Index, DocumentID: fmt.Sprintf("%d", p.ID), Body: bytes.NewReader(b), Refresh: "true"}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (e *Elastic) DeletePost(ctx context.Context, id uint) error {
	req := esapi.DeleteRequest{Index: e.Index, DocumentID: fmt.Sprintf("%d", id), Refresh: "true"}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete error: %s", res.String())
	}
	return nil
}

// FindRelated ranks published posts sharing at least one tag with the given
// post, excluding the post itself.
func (e *Elastic) FindRelated(ctx context.Context, postID uint, tags []string, limit int) ([]map[string]interface{}, error) {
	if len(tags) == 0 {
		return []map[string]interface{}{}, nil
	}

	var shouldClauses []map[string]interface{}
	for _, tag := range tags {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"term": map[string]interface{}{"tags": tag},
		})
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": shouldClauses,
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"published": true},
				},
				"must_not": map[string]interface{}{
					"term": map[string]interface{}{"id": postID},
				},
				"minimum_should_match": 1,
			},
		},
		"size": limit,
	}

	b, _ := json.Marshal(body)
	res, err := e.Client.Search(
		e.Client.Search.WithContext(ctx),
		e.Client.Search.WithIndex(e.Index),
		e.Client.Search.WithBody(strings.NewReader(string(b))),
		e.Client.Search.WithTrackTotalHits(true),
		e.Client.Search.WithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("related posts search error: %s", res.String())
	}

	var parsed map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := []map[string]interface{}{}
	hits := parsed["hits"].(map[string]interface{})["hits"].([]interface{})
	for _, h := range hits {
		src := h.(map[string]interface{})["_source"].(map[string]interface{})
		results = append(results, src)
	}
	return results, nil
}
