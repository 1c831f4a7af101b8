package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client calls the hotel room backend. It holds the session token, if the
// backend issued one, in memory only.
type Client struct {
	http   *resty.Client
	logger *zap.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("backend call",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
		)
		return nil
	})

	return &Client{http: httpClient, logger: logger}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if tok := c.Token(); tok != "" {
		req.SetAuthToken(tok)
	}
	return req
}

// check turns a transport error or a non-2xx reply into an error.
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("backend unreachable", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		apiErr := newAPIError(resp.StatusCode(), resp.Body())
		c.logger.Warn("backend rejected request",
			zap.String("op", op),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	return nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	return c.authenticate(ctx, "login", "/login", creds)
}

func (c *Client) Signup(ctx context.Context, reg Registration) (*AuthResult, error) {
	return c.authenticate(ctx, "signup", "/signup", reg)
}

func (c *Client) authenticate(ctx context.Context, op, path string, payload any) (*AuthResult, error) {
	var out AuthResult
	resp, err := c.request(ctx).SetBody(payload).SetResult(&out).Post(path)
	if err := c.check(op, resp, err); err != nil {
		return nil, err
	}
	if out.Success && out.Token != "" {
		c.SetToken(out.Token)
	}
	return &out, nil
}

// ListRooms returns the rooms created by email.
func (c *Client) ListRooms(ctx context.Context, email string) ([]Room, error) {
	var rooms []Room
	resp, err := c.request(ctx).
		SetQueryParam("email", email).
		SetResult(&rooms).
		Get("/viewRooms")
	if err := c.check("view rooms", resp, err); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []Room{}
	}
	return rooms, nil
}

func (c *Client) AddRoom(ctx context.Context, in RoomInput) (*Room, error) {
	var room Room
	resp, err := c.request(ctx).SetBody(in).SetResult(&room).Post("/addRoom")
	if err := c.check("add room", resp, err); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) EditRoom(ctx context.Context, id string, in RoomInput) (*Room, error) {
	var room Room
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(in).
		SetResult(&room).
		Put("/editRoom/{id}")
	if err := c.check("edit room", resp, err); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("id", id).Delete("/deleteRoom/{id}")
	return c.check("delete room", resp, err)
}

// Healthy reports whether the backend answers its health probe.
func (c *Client) Healthy(ctx context.Context) bool {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	return err == nil && resp.StatusCode() == http.StatusOK
}
