package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config for the paperless client.
type Config struct {
	BaseURL string        // default http://localhost:8000
	APIKey  string        // token for the Authorization header
	OwnerID int           // 0 means entities are created without an owner
	Timeout time.Duration // http client timeout
	DryRun  bool          // suppress all writes (POST/PATCH)
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// request issues one API call and returns the raw response body.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	var bodyLen int
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			c.log.Error("paperless.http.encode_error", "req_id", rid, "error", err)
			return nil, fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(bs)
		bodyLen = len(bs)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.log.Error("paperless.http.build_request_error", "req_id", rid, "error", err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json; version=4")

	c.log.Info("paperless.http.request",
		"req_id", rid,
		"method", method,
		"path", path,
		"content_length", bodyLen,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("paperless.http.send_error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("paperless.http.response_body_close_error", "req_id", rid, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.log.Info("paperless.http.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("paperless status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
