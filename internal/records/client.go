package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "record not found")

// Client calls a records API. The zero HTTP field falls back to a 5s client.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	ProjectID string
	PublicKey string
}

func NewClient(baseURL, projectID, publicKey string, timeout time.Duration) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ProjectID: projectID,
		PublicKey: publicKey,
	}
}

// Fetch returns the raw JSON array of records matching q.
func (c *Client) Fetch(ctx context.Context, table string, q Query) (json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodPost, c.url(table, "fetch"), q)
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 || string(res.Data) == "null" {
		return json.RawMessage("[]"), nil
	}
	return res.Data, nil
}

// Get returns one raw record, or ErrNotFound.
func (c *Client) Get(ctx context.Context, table string, id int) (json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodGet, c.url(table, strconv.Itoa(id)), nil)
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 || string(res.Data) == "null" {
		return nil, ErrNotFound
	}
	return res.Data, nil
}

// Create stores rec and returns the stored record as the server reports it.
func (c *Client) Create(ctx context.Context, table string, rec any) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPost, table, rec)
}

// Update applies a partial record (it must carry "Id") and returns the stored record.
func (c *Client) Update(ctx context.Context, table string, rec any) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPut, table, rec)
}

func (c *Client) write(ctx context.Context, method, table string, rec any) (json.RawMessage, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	res, err := c.do(ctx, method, c.url(table), WriteRequest{Records: []json.RawMessage{b}})
	if err != nil {
		return nil, err
	}
	for _, r := range res.Results {
		if r.Success {
			continue
		}
		if len(r.Errors) > 0 {
			fe := r.Errors[0]
			return nil, apperr.New(apperr.ExternalSource, fe.FieldLabel+": "+fe.Message)
		}
		return nil, apperr.New(apperr.ExternalSource, nonEmpty(r.Message, "record rejected"))
	}
	for _, r := range res.Results {
		if r.Success && len(r.Data) > 0 {
			return r.Data, nil
		}
	}
	return nil, apperr.New(apperr.ExternalSource, table+": no record returned")
}

func (c *Client) do(ctx context.Context, method, url string, body any) (*Response, error) {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-ID", c.ProjectID)
	req.Header.Set("X-Public-Key", c.PublicKey)

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "records api", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "records api: "+res.Status, err)
	}
	if res.StatusCode >= 300 || !out.Success {
		return nil, apperr.New(apperr.ExternalSource, "records api: "+nonEmpty(out.Message, res.Status))
	}
	return &out, nil
}

func (c *Client) url(parts ...string) string {
	return c.BaseURL + "/v1/" + strings.Join(parts, "/")
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// IsNotFound reports whether err is a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
