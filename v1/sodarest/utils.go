package sodarest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// result is the list envelope returned by collection, query and write
// endpoints.
type result struct {
	Items        []document.Envelope `json:"items"`
	HasMore      bool                `json:"hasMore"`
	Count        int                 `json:"count"`
	Offset       int                 `json:"offset"`
	Limit        int                 `json:"limit"`
	TotalResults int                 `json:"totalResults"`
}

type collectionsResult struct {
	Items []struct {
		Name string `json:"name"`
	} `json:"items"`
	HasMore bool `json:"hasMore"`
}

func (c *Client) collectionsURL() string {
	return c.base
}

func (c *Client) collectionURL(collection string) string {
	return c.base + "/" + collection
}

func (c *Client) objectURL(collection, id string) string {
	return c.base + "/" + collection + "/" + id
}

// readBackURL lists the single document following the preceding key.
func (c *Client) readBackURL(collection, precedingKey string) string {
	return c.base + "/" + collection + "/?limit=1&fromID=" + precedingKey
}

func (c *Client) filterURL(collection string) string {
	return c.base + "/custom-actions/query/" + collection + "/"
}

// send performs one HTTP exchange. The body is always read fully and the
// connection released before returning.
func (c *Client) send(ctx context.Context, method, target string, body []byte) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(method, target, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, transportError(method, target, err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	c.logger.Debug("soda request", nil, map[string]interface{}{
		"method": method,
		"url":    target,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(method, target, err)
	}

	c.logger.Debug("soda response", nil, map[string]interface{}{
		"method": method,
		"url":    target,
		"status": resp.StatusCode,
		"bytes":  len(data),
	})

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func decodeResult(method, target string, resp *response) (*result, error) {
	var r result
	if err := json.Unmarshal(resp.body, &r); err != nil {
		return nil, transportError(method, target, fmt.Errorf("cannot decode response: %w", err))
	}
	return &r, nil
}

// findItem returns the item whose key matches id. Keys are compared
// case-insensitively since the store renders them in upper case.
func findItem(items []document.Envelope, id string) (document.Envelope, bool) {
	for _, item := range items {
		if strings.EqualFold(item.ID, id) {
			return item, true
		}
	}
	return document.Envelope{}, false
}
