package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/renalplate/backend/internal/domain"
	"golang.org/x/time/rate"
)

// ProviderName identifies this provider in cache keys and logs
const ProviderName = "usda"

const (
	defaultTimeout         = 10 * time.Second
	defaultRequestsPerHour = 1000
	defaultBurst           = 10
	maxResponseBytes       = 5 << 20
)

var defaultDataTypes = []string{"Foundation", "SR Legacy", "Survey (FNDDS)", "Branded"}

// ClientConfig holds optional client settings; zero values use defaults
type ClientConfig struct {
	Timeout time.Duration
	// RequestsPerHour feeds the client-side token bucket. USDA allows 1000/hour per key.
	RequestsPerHour int
	Burst           int
	DataTypes       []string
	HTTPClient      *http.Client
}

// Client handles communication with the USDA FoodData Central API.
// It serves as both search and nutrient provider and issues exactly one
// HTTP request per call.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	dataTypes   []string
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new USDA API client. The API key is passed through
// to the API and never logged.
func NewClient(apiKey, baseURL string, config ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	perHour := config.RequestsPerHour
	if perHour <= 0 {
		perHour = defaultRequestsPerHour
	}
	burst := config.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	dataTypes := config.DataTypes
	if len(dataTypes) == 0 {
		dataTypes = defaultDataTypes
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		dataTypes:   dataTypes,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perHour)/3600), burst),
		logger:      logger.With("component", "usda"),
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return ProviderName
}

// SearchFoods searches for foods in the USDA database. An empty hit list
// is not an error.
func (c *Client) SearchFoods(ctx context.Context, query string, maxResults int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", strings.Join(c.dataTypes, ","))
	if maxResults > 0 {
		params.Add("pageSize", strconv.Itoa(maxResults))
	}
	endpoint := c.baseURL + "/v1/foods/search"

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProviderUnavailable, err)
	}

	candidates := make([]domain.Candidate, 0, len(searchResp.Foods))
	for i := range searchResp.Foods {
		candidates = append(candidates, MapToCandidate(&searchResp.Foods[i]))
	}

	c.logger.Debug("search completed", "query", query, "hits", searchResp.TotalHits, "returned", len(candidates))
	return candidates, nil
}

// FetchNutrients retrieves the nutrient list for a specific food by FDC ID
func (c *Client) FetchNutrients(ctx context.Context, fdcID string) (*domain.FoodNutrients, error) {
	if _, err := strconv.Atoi(fdcID); err != nil {
		return nil, fmt.Errorf("%w: invalid FDC id %q", domain.ErrInvalidRequest, fdcID)
	}

	params := url.Values{}
	params.Add("api_key", c.apiKey)
	endpoint := c.baseURL + "/v1/food/" + url.PathEscape(fdcID)

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var food Food
	if err := json.Unmarshal(body, &food); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProviderUnavailable, err)
	}

	nutrients := MapToFoodNutrients(&food)
	c.logger.Debug("food details fetched", "fdc_id", fdcID, "nutrients", len(nutrients.Entries))
	return nutrients, nil
}

// get waits for the rate limiter, performs a single GET and returns the body
// of a 200 response. Other statuses map onto the domain error taxonomy.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrProviderUnavailable, err)
	}

	resp, err := c.doRequest(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		c.logger.Warn("request failed", "endpoint", endpoint, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrProviderUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFoodNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("unexpected status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
	return body, nil
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrProviderUnavailable, err)
	}
	req.Header.Set("User-Agent", "RenalPlate/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, redactURLError(err))
	}
	return resp, nil
}

// readLimitedBody reads at most limit bytes
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// redactURLError strips the query string (and with it the API key) from
// transport errors, which embed the full request URL.
func redactURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		if i := strings.Index(urlErr.URL, "?"); i >= 0 {
			return &url.Error{Op: urlErr.Op, URL: urlErr.URL[:i], Err: urlErr.Err}
		}
	}
	return err
}
