// internal/client/client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/models"
)

const maxErrorBody = 200

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("property api: %s", e.Status)
	}
	return fmt.Sprintf("property api: %s: %s", e.Status, e.Body)
}

// ResponseFormatError is returned when a successful response is not JSON.
type ResponseFormatError struct {
	ContentType string
	Body        string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("property api: unexpected content type %q", e.ContentType)
}

type PropertyClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type Option func(*PropertyClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *PropertyClient) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *PropertyClient) {
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *PropertyClient) {
		c.logger = logger
	}
}

// New returns a client for the list endpoint rooted at baseURL, e.g.
// http://localhost:5228/api/Property.
func New(baseURL string, opts ...Option) *PropertyClient {
	c := &PropertyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PropertyClient) GetProperties(ctx context.Context, criteria models.PropertyCriteria) (*models.Page[models.FullProperty], error) {
	var page models.Page[models.FullProperty]
	if _, err := c.get(ctx, c.baseURL+"?"+Query(criteria).Encode(), &page, false); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.FullProperty{}
	}
	return &page, nil
}

// GetProperty returns nil and no error when the API answers 404.
func (c *PropertyClient) GetProperty(ctx context.Context, id string) (*models.FullProperty, error) {
	var property models.FullProperty
	found, err := c.get(ctx, c.baseURL+"/"+url.PathEscape(id), &property, true)
	if err != nil || !found {
		return nil, err
	}
	return &property, nil
}

// Query encodes criteria as list endpoint parameters. Empty filters are
// omitted; page and pageSize are always present.
func Query(criteria models.PropertyCriteria) url.Values {
	criteria = criteria.WithDefaults()

	values := url.Values{}
	if name := strings.TrimSpace(criteria.Name); name != "" {
		values.Set("name", name)
	}
	if address := strings.TrimSpace(criteria.Address); address != "" {
		values.Set("address", address)
	}
	if criteria.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*criteria.MinPrice, 'f', -1, 64))
	}
	if criteria.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*criteria.MaxPrice, 'f', -1, 64))
	}
	values.Set("page", strconv.Itoa(criteria.Page))
	values.Set("pageSize", strconv.Itoa(criteria.PageSize))
	return values
}

// get decodes a JSON response into out. When allowMissing is set a 404 is
// reported as found == false instead of an error.
func (c *PropertyClient) get(ctx context.Context, target string, out interface{}, allowMissing bool) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("property api request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"url":      target,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Property API request")

	if allowMissing && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxErrorBody))
		return false, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType != "application/json" {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxErrorBody))
		return false, &ResponseFormatError{
			ContentType: contentType,
			Body:        truncate(string(body), maxErrorBody),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode property api response: %w", err)
	}
	return true, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
