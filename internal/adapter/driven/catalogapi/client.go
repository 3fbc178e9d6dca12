// Package catalogapi implements the CatalogClient port against the remote
// jewellery catalog HTTP API.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CatalogClient = (*Client)(nil)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the catalog API. GET responses go through an in-memory
// HTTP cache so revalidated category lists are served locally.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	token   string
	logger  *slog.Logger
}

// NewClient creates a catalog API client with the following transport stack:
//  1. httpcache (RFC 7234 caching of GET responses, ETag revalidation)
//  2. http.DefaultTransport
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	transport := httpcache.NewMemoryCacheTransport()
	httpClient := &http.Client{Transport: transport, Timeout: 30 * time.Second}
	return NewClientWithHTTPClient(httpClient, baseURL, token, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client. This
// constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:    httpClient,
		baseURL: u,
		token:   token,
		logger:  logger,
	}, nil
}

// envelope is the response wrapper used by every catalog endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchCategories lists the categories whose parent is parentID.
func (c *Client) FetchCategories(ctx context.Context, parentID string) ([]model.Category, error) {
	query := url.Values{}
	if parentID != "" {
		query.Set("parent", parentID)
	}

	var items []categoryJSON
	if err := c.get(ctx, "/category", query, &items); err != nil {
		return nil, fmt.Errorf("fetch categories (parent %s): %w", parentID, err)
	}

	categories := make([]model.Category, 0, len(items))
	for _, it := range items {
		categories = append(categories, model.Category{ID: it.ID, Name: it.Name})
	}
	return categories, nil
}

// ListJewellery lists every catalog record.
func (c *Client) ListJewellery(ctx context.Context) ([]model.Jewellery, error) {
	var items []jewelleryJSON
	if err := c.get(ctx, "/jewellery", nil, &items); err != nil {
		return nil, fmt.Errorf("list jewellery: %w", err)
	}

	out := make([]model.Jewellery, 0, len(items))
	for _, it := range items {
		out = append(out, it.toModel())
	}
	return out, nil
}

// GetJewellery returns a single record, or ErrJewelleryNotFound.
func (c *Client) GetJewellery(ctx context.Context, id string) (*model.Jewellery, error) {
	var item jewelleryJSON
	err := c.get(ctx, "/jewellery/"+url.PathEscape(id), nil, &item)
	if err != nil {
		var rejected *driven.RejectedError
		if errors.As(err, &rejected) && rejected.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("get jewellery %s: %w", id, driven.ErrJewelleryNotFound)
		}
		return nil, fmt.Errorf("get jewellery %s: %w", id, err)
	}

	j := item.toModel()
	return &j, nil
}

// CreateJewellery posts a new record as multipart form data.
func (c *Client) CreateJewellery(ctx context.Context, payload model.JewelleryPayload) (*model.Jewellery, error) {
	j, err := c.sendMultipart(ctx, http.MethodPost, "/jewellery", payload)
	if err != nil {
		return nil, fmt.Errorf("create jewellery: %w", err)
	}
	return j, nil
}

// UpdateJewellery replaces an existing record with multipart form data.
func (c *Client) UpdateJewellery(ctx context.Context, id string, payload model.JewelleryPayload) (*model.Jewellery, error) {
	j, err := c.sendMultipart(ctx, http.MethodPut, "/jewellery/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, fmt.Errorf("update jewellery %s: %w", id, err)
	}
	return j, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, payload model.JewelleryPayload) (*model.Jewellery, error) {
	body, contentType, err := EncodeMultipart(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	var item jewelleryJSON
	if err := c.do(req, &item); err != nil {
		return nil, err
	}

	j := item.toModel()
	return &j, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = u.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.Header.Get(httpcache.XFromCache) != "" {
		c.logger.Debug("catalog api cache hit", "path", req.URL.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejectedFrom(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode %s data: %w", req.URL.Path, err)
	}
	return nil
}

// rejectedFrom builds a RejectedError, pulling "message" out of a JSON body when present.
func rejectedFrom(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env envelope
	msg := ""
	if err := json.Unmarshal(raw, &env); err == nil {
		msg = env.Message
	}

	return &driven.RejectedError{StatusCode: resp.StatusCode, Message: msg}
}

// EncodeMultipart writes every payload field, then each kept image URL and
// each uploaded image, both under the "images" field name.
func EncodeMultipart(payload model.JewelleryPayload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range payload.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	for _, ref := range payload.KeptImages {
		if err := w.WriteField("images", ref); err != nil {
			return nil, "", fmt.Errorf("write kept image %s: %w", ref, err)
		}
	}

	for _, img := range payload.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.FileName))
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part %s: %w", img.FileName, err)
		}
		if _, err := io.Copy(part, img.Body); err != nil {
			return nil, "", fmt.Errorf("copy image %s: %w", img.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
