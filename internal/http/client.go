// Package http provides the HTTP transport used by the resource clients:
// retryable requests, bearer authentication, optional response caching, and
// decoding of the service's error envelope.
package http

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/taskwire-io/asana/internal/auth"
	"github.com/taskwire-io/asana/internal/constants"
	"github.com/taskwire-io/asana/pkg/asana"
)

// Logger is the transport's logging interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the raw parsed response envelope.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs HTTP requests against the API. Retries for transient
// failures (5xx, 429, connection errors) happen inside this client; layers
// above it never retry.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *asana.InterceptorChain
	cacheManager *asana.CacheManager
	cachePolicy  *asana.CachingPolicy
	cacheTTL     time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the transport logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry behavior for transient failures.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithInterceptors attaches a request/response interceptor chain.
func WithInterceptors(chain *asana.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache enables response caching for requests the policy accepts.
func WithCache(manager *asana.CacheManager, policy *asana.CachingPolicy, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheManager = manager
		c.cachePolicy = policy
		c.cacheTTL = ttl
	}
}

// NewClient creates a new API transport. tokenManager may be nil for
// unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    "asana-go-client",
		cacheTTL:     constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs a request and returns the raw response. Responses with a
// non-2xx status return both the response and the decoded error envelope.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	if cached := c.cachedResponse(ctx, req); cached != nil {
		return cached, nil
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	err = c.runRequestInterceptors(ctx, req, httpReq, bodyBytes)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	var respErr error
	if resp.StatusCode >= 400 {
		respErr = asana.ParseResponseError(resp.StatusCode, respBody)
	}

	err = c.runResponseInterceptors(ctx, req, resp, respErr)
	if err != nil {
		return resp, err
	}

	if respErr != nil {
		return resp, respErr
	}

	c.storeResponse(ctx, req, resp)

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// cacheKeyParams flattens the query for cache key construction.
func cacheKeyParams(query url.Values) map[string]string {
	if len(query) == 0 {
		return nil
	}

	params := make(map[string]string, len(query))
	for key := range query {
		params[key] = query.Get(key)
	}

	return params
}

func (c *Client) cachedResponse(ctx context.Context, req *Request) *Response {
	if c.cacheManager == nil || c.cachePolicy == nil || req.Method != http.MethodGet {
		return nil
	}

	key := c.cacheManager.GetCacheKey(req.Method, req.Path, cacheKeyParams(req.Query))

	data, err := c.cacheManager.Get(ctx, key)
	if err != nil {
		return nil
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       data,
	}
}

func (c *Client) storeResponse(ctx context.Context, req *Request, resp *Response) {
	if c.cacheManager == nil || c.cachePolicy == nil {
		return
	}

	if !c.cachePolicy.ShouldCache(req.Method, req.Path, resp.StatusCode) {
		return
	}

	key := c.cacheManager.GetCacheKey(req.Method, req.Path, cacheKeyParams(req.Query))

	etag := resp.Headers.Get("ETag")

	_ = c.cacheManager.SetWithETag(ctx, key, resp.Body, etag, c.cacheTTL)
}

func (c *Client) runRequestInterceptors(ctx context.Context, req *Request, httpReq *retryablehttp.Request, body []byte) error {
	if c.interceptors == nil {
		return nil
	}

	view := &asana.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header,
		Body:    body,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, view)
	if err != nil {
		return err
	}

	return nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *Request, resp *Response, respErr error) error {
	if c.interceptors == nil {
		return nil
	}

	view := &asana.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      respErr,
	}

	return c.interceptors.ExecuteResponseInterceptors(ctx, &asana.Request{Method: req.Method, Path: req.Path}, view)
}
