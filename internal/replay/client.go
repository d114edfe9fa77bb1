package replay

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/imroc/req/v3"
	jsoniter "github.com/json-iterator/go"

	"github.com/okian/gestures/internal/domain/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the gesture service API.
type Client struct {
	c *req.Client
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClient returns a client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := req.C().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	return &Client{c: c}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.c.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// PostPointer submits one pointer sample.
func (c *Client) PostPointer(ctx context.Context, p types.PointerRequest) error {
	return c.post(ctx, "/pointer", p)
}

// PostKey submits one key release.
func (c *Client) PostKey(ctx context.Context, k types.KeyRequest) error {
	return c.post(ctx, "/key", k)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var apiErr apiError
	resp, err := c.c.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, apiErr.Message)
	}
	return nil
}

// Gestures reads up to limit delivered gestures, oldest first.
func (c *Client) Gestures(ctx context.Context, limit int) ([]Gesture, error) {
	var out []Gesture
	resp, err := c.c.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/gestures")
	if err != nil {
		return nil, fmt.Errorf("get gestures: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get gestures: status %d", resp.StatusCode)
	}
	return out, nil
}
