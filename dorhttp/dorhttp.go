// Package dorhttp implements dormerge.Repository over the DOR service
// HTTP API.
package dorhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sdr-ops/dormerge"
	"github.com/sdr-ops/dormerge/config"
	"github.com/sdr-ops/dormerge/contentmd"
)

const defaultTimeout = 60 * time.Second

// Client talks to a DOR service instance. It implements
// dormerge.Repository.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the DOR service named by the environment
// profile.
func New(env config.Environment) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(env.ServiceURL, "/"),
		token:   env.Token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// objectResponse is the service's object summary record.
type objectResponse struct {
	Druid              string `json:"druid"`
	AllowsModification bool   `json:"allows_modification"`
}

// relationshipRequest is the body for relationship creation.
type relationshipRequest struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// Find implements dormerge.Repository. It fetches the object summary and
// the object's content metadata. An object without a content metadata
// datastream gets a fresh, empty document.
func (c *Client) Find(ctx context.Context, druid string) (*dormerge.Object, error) {
	var summary objectResponse
	status, body, err := c.do(ctx, http.MethodGet, c.objectPath(druid), nil, "")
	if err != nil {
		return nil, fmt.Errorf("finding object %q: %w", druid, err)
	}
	switch status {
	case http.StatusOK:
		if err := json.Unmarshal(body, &summary); err != nil {
			return nil, fmt.Errorf("finding object %q: decoding response: %w", druid, err)
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%q: %w", druid, dormerge.ErrNotFound)
	default:
		return nil, fmt.Errorf("finding object %q: unexpected status %d", druid, status)
	}
	obj := &dormerge.Object{
		Druid:              druid,
		AllowsModification: summary.AllowsModification,
	}
	status, body, err = c.do(ctx, http.MethodGet, c.metadataPath(druid), nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetching content metadata for %q: %w", druid, err)
	}
	switch status {
	case http.StatusOK:
		doc, err := contentmd.Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("content metadata for %q: %w", druid, err)
		}
		obj.ContentMetadata = doc
	case http.StatusNotFound:
		obj.ContentMetadata = contentmd.NewDocument(druid, contentmd.TypeFile)
	default:
		return nil, fmt.Errorf("fetching content metadata for %q: unexpected status %d", druid, status)
	}
	return obj, nil
}

// Save implements dormerge.Repository. The object's content metadata is
// replaced, then each relationship recorded on the working copy is
// appended.
func (c *Client) Save(ctx context.Context, obj *dormerge.Object) error {
	if obj.ContentMetadata != nil {
		buf := &bytes.Buffer{}
		if err := obj.ContentMetadata.Encode(buf); err != nil {
			return fmt.Errorf("saving object %q: %w", obj.Druid, err)
		}
		status, _, err := c.do(ctx, http.MethodPut, c.metadataPath(obj.Druid), buf, "application/xml")
		if err != nil {
			return fmt.Errorf("saving content metadata for %q: %w", obj.Druid, err)
		}
		if status != http.StatusOK && status != http.StatusNoContent {
			return fmt.Errorf("saving content metadata for %q: unexpected status %d", obj.Druid, status)
		}
	}
	for _, rel := range obj.Relationships {
		body, err := json.Marshal(relationshipRequest{Kind: string(rel.Kind), Target: rel.Target})
		if err != nil {
			return fmt.Errorf("saving object %q: %w", obj.Druid, err)
		}
		path := c.objectPath(obj.Druid) + "/relationships"
		status, _, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json")
		if err != nil {
			return fmt.Errorf("recording relationship on %q: %w", obj.Druid, err)
		}
		if status != http.StatusOK && status != http.StatusCreated && status != http.StatusNoContent {
			return fmt.Errorf("recording relationship on %q: unexpected status %d", obj.Druid, status)
		}
	}
	return nil
}

func (c *Client) objectPath(druid string) string {
	return "/v1/objects/" + url.PathEscape(druid)
}

func (c *Client) metadataPath(druid string) string {
	return c.objectPath(druid) + "/metadata/contentMetadata"
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}
