package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mixin_wallet/internal/domain/entity"
	mixin_types "mixin_wallet/internal/entity"
	"mixin_wallet/internal/pkg/metrics"
	"mixin_wallet/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL      = "https://api.mixin.one"
	DefaultTimeout      = 10 * time.Second
	DefaultRateLimit    = 10 // requests per second
	DefaultOutputsLimit = 1000
)

// APIError is a provider failure: a non-2xx status or an error envelope.
type APIError struct {
	Endpoint    string
	StatusCode  int
	Code        int
	Description string
	// Envelope is set when the provider answered 2xx with an "error" object.
	Envelope bool
}

func (e *APIError) Error() string {
	if e.Envelope {
		return fmt.Sprintf("mixin API error on %s: %s (code %d)", e.Endpoint, e.Description, e.Code)
	}
	return fmt.Sprintf("mixin API request %s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Description)
}

// MixinClient implements port.MixinClient over fasthttp.
type MixinClient struct {
	client       *fasthttp.Client
	baseURL      string
	timeout      time.Duration
	logger       *zap.Logger
	limiter      *rate.Limiter
	outputsLimit int
}

// Option configures a MixinClient.
type Option func(*MixinClient)

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *MixinClient) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithOutputsLimit sets the page size used for safe outputs.
func WithOutputsLimit(limit int) Option {
	return func(c *MixinClient) {
		if limit > 0 {
			c.outputsLimit = limit
		}
	}
}

// NewMixinClient creates a client for the provider at baseURL.
func NewMixinClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *MixinClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &MixinClient{
		client:       &fasthttp.Client{Name: "mixin_wallet"},
		baseURL:      strings.TrimRight(baseURL, "/"),
		timeout:      timeout,
		logger:       logger.Named("MixinClient"),
		limiter:      rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		outputsLimit: DefaultOutputsLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserMe fetches the profile bound to token. An error envelope on this endpoint is
// reported as a nil profile so callers treat it like any other empty answer.
func (c *MixinClient) UserMe(ctx context.Context, token string) (*entity.Profile, error) {
	var profile entity.Profile
	found, err := c.get(ctx, "me", "/me", token, &profile)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Envelope {
			c.logger.Warn("Profile request answered with error envelope",
				zap.Int("code", apiErr.Code),
				zap.String("description", apiErr.Description))
			return nil, nil
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// SafeOutputs lists outputs owned by members with threshold 1, oldest first.
func (c *MixinClient) SafeOutputs(ctx context.Context, members []string, token string, state entity.OutputState) ([]entity.Output, error) {
	path := fmt.Sprintf("/safe/outputs?members=%s&threshold=1&offset=0&limit=%d&order=ASC",
		utils.HashMembers(members), c.outputsLimit)
	if state != entity.OutputStateAny {
		path += "&state=" + url.QueryEscape(string(state))
	}
	var outputs []entity.Output
	if _, err := c.get(ctx, "safe_outputs", path, token, &outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// TopAssets fetches the provider's top assets list.
func (c *MixinClient) TopAssets(ctx context.Context) ([]entity.AssetDetails, error) {
	var raw []mixin_types.MixinAsset
	if _, err := c.get(ctx, "network_assets_top", "/network/assets/top", "", &raw); err != nil {
		return nil, err
	}
	assets := make([]entity.AssetDetails, 0, len(raw))
	for _, a := range raw {
		assets = append(assets, toAssetDetails(a))
	}
	return assets, nil
}

// NetworkAsset fetches a single asset without authentication.
func (c *MixinClient) NetworkAsset(ctx context.Context, assetID string) (*entity.AssetDetails, error) {
	return c.asset(ctx, "network_asset", "/network/assets/"+url.PathEscape(assetID), "")
}

// SafeAsset fetches a single asset with the user's token.
func (c *MixinClient) SafeAsset(ctx context.Context, assetID string, token string) (*entity.AssetDetails, error) {
	return c.asset(ctx, "safe_asset", "/safe/assets/"+url.PathEscape(assetID), token)
}

func (c *MixinClient) asset(ctx context.Context, endpoint, path, token string) (*entity.AssetDetails, error) {
	var raw mixin_types.MixinAsset
	found, err := c.get(ctx, endpoint, path, token, &raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", entity.ErrAssetNotFound, path)
	}
	details := toAssetDetails(raw)
	return &details, nil
}

// get performs a rate-limited GET and decodes the "data" member of the response into
// out. It reports false when the response carries no data.
func (c *MixinClient) get(ctx context.Context, endpoint, path, token string, out any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := c.baseURL + path
	c.logger.Debug("Requesting Mixin API", zap.String("endpoint", endpoint), zap.String("path", path))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "transport_error").Inc()
		c.logger.Error("Failed to execute request to Mixin API", zap.String("endpoint", endpoint), zap.Error(err))
		return false, fmt.Errorf("failed to execute request to %s: %w", endpoint, err)
	}

	status := resp.StatusCode()
	metrics.ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	body := resp.Body()

	if status < 200 || status >= 300 {
		c.logger.Error("Mixin API request failed",
			zap.String("endpoint", endpoint),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", body))
		return false, &APIError{Endpoint: endpoint, StatusCode: status, Description: string(body)}
	}

	if envelope := gjson.GetBytes(body, "error"); envelope.IsObject() {
		var apiErr mixin_types.MixinErrorBody
		if err := json.Unmarshal([]byte(envelope.Raw), &apiErr); err != nil {
			return false, fmt.Errorf("failed to decode error envelope from %s: %w", endpoint, err)
		}
		return false, &APIError{
			Endpoint:    endpoint,
			StatusCode:  status,
			Code:        apiErr.Code,
			Description: apiErr.Description,
			Envelope:    true,
		}
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		c.logger.Warn("Mixin API returned no data", zap.String("endpoint", endpoint))
		return false, nil
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s response: %w", endpoint, err)
	}
	return true, nil
}

func toAssetDetails(a mixin_types.MixinAsset) entity.AssetDetails {
	return entity.AssetDetails{
		AssetID:   a.AssetID,
		ChainID:   a.ChainID,
		Symbol:    a.Symbol,
		Name:      a.Name,
		IconURL:   a.IconURL,
		PriceUSD:  a.PriceUSD,
		PriceBTC:  a.PriceBTC,
		ChangeUSD: a.ChangeUSD,
		ChangeBTC: a.ChangeBTC,
	}
}
