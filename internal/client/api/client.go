// Package api is a thin client for the checkers rules server.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"checkers/internal/core"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response decoded from the server's error body
type APIError struct {
	Status   int
	Response core.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Details != "" {
		return fmt.Sprintf("%d %s: %s (%s)", e.Status, e.Response.Code, e.Response.Error, e.Response.Details)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Response.Code, e.Response.Error)
}

type Client struct {
	rc      *resty.Client
	baseURL string
}

func New(baseURL string) *Client {
	c := &Client{
		rc: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
	}
	c.SetBaseURL(baseURL)
	return c
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
	c.rc.SetBaseURL(c.baseURL)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetDebug makes resty log every request and response
func (c *Client) SetDebug(v bool) {
	c.rc.SetDebug(v)
}

func (c *Client) do(method, path string, body, result any) error {
	return c.doQuery(method, path, nil, body, result)
}

// doQuery is do with URL query parameters; resty handles the escaping
func (c *Client) doQuery(method, path string, query map[string]string, body, result any) error {
	var errResp core.ErrorResponse
	req := c.rc.R().SetResult(result).SetError(&errResp)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Response: errResp}
	}
	return nil
}

func (c *Client) Health() (*core.HealthResponse, error) {
	var resp core.HealthResponse
	if err := c.do(resty.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CheckMove(req core.MoveCheckRequest) (*core.VerdictResponse, error) {
	var resp core.VerdictResponse
	if err := c.do(resty.MethodPost, "/api/v1/moves/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CheckCapture(req core.CaptureCheckRequest) (*core.VerdictResponse, error) {
	var resp core.VerdictResponse
	if err := c.do(resty.MethodPost, "/api/v1/captures/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Targets(req core.TargetsRequest) (*core.TargetsResponse, error) {
	var resp core.TargetsResponse
	if err := c.do(resty.MethodPost, "/api/v1/targets", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Probes(probeType, color string, limit int) (*core.ProbesResponse, error) {
	query := make(map[string]string, 3)
	if probeType != "" {
		query["type"] = probeType
	}
	if color != "" {
		query["color"] = color
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	var resp core.ProbesResponse
	if err := c.doQuery(resty.MethodGet, "/api/v1/probes", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
