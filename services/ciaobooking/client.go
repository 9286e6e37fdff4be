// File: services/ciaobooking/client.go
package ciaobooking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"guestdesk/models"
	"guestdesk/utils"

	"go.uber.org/zap"
)

// tokenSafetyMargin is subtracted from the token expiry before deciding
// whether a re-login is needed.
const tokenSafetyMargin = 60 * time.Second

// Client talks to the CiaoBooking public API. The cached bearer token is
// shared by all callers and refreshed under mutual exclusion, so a
// 401-triggered refresh from one request cannot invalidate a token freshly
// obtained by another.
type Client struct {
	baseURL  string
	email    string
	password string
	source   string
	http     *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(baseURL, email, password, source string) *Client {
	return &Client{
		baseURL:  baseURL,
		email:    email,
		password: password,
		source:   source,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type loginResponse struct {
	Data struct {
		Token     string      `json:"token"`
		ExpiresAt json.Number `json:"expiresAt"`
	} `json:"data"`
}

// ensureToken returns a bearer token, re-authenticating when the cached one
// is missing or within the safety margin of its expiry.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Until(c.tokenExp) > tokenSafetyMargin {
		return c.token, nil
	}
	return c.loginLocked(ctx)
}

// invalidateToken drops the cached token unless another caller already
// replaced it with a different one.
func (c *Client) invalidateToken(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == rejected {
		c.token = ""
		c.tokenExp = time.Time{}
	}
}

// loginLocked performs the credential exchange. Caller must hold c.mu.
func (c *Client) loginLocked(ctx context.Context) (string, error) {
	logger := utils.GetLogger()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("email", c.email)
	_ = w.WriteField("password", c.password)
	_ = w.WriteField("source", c.source)
	if err := w.Close(); err != nil {
		return "", &AuthError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/public/login", &body)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("CiaoBooking login failed", zap.Error(err))
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("CiaoBooking login rejected", zap.Int("status", resp.StatusCode))
		return "", &AuthError{Err: fmt.Errorf("login status %d", resp.StatusCode)}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", &AuthError{Err: fmt.Errorf("decode login response: %w", err)}
	}
	if lr.Data.Token == "" {
		return "", &AuthError{Err: fmt.Errorf("login response carried no token")}
	}

	c.token = lr.Data.Token
	if exp, err := lr.Data.ExpiresAt.Int64(); err == nil && exp > 0 {
		c.tokenExp = time.Unix(exp, 0)
	} else {
		c.tokenExp = time.Now().Add(30 * time.Minute)
	}
	logger.Info("CiaoBooking login OK", zap.Time("tokenExpiry", c.tokenExp))
	return c.token, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// A 401 invalidates the cached token and the request is retried exactly once
// with a fresh one. A 404 maps to ErrNotFound.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.doGet(ctx, path, query, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		c.invalidateToken(token)
		token, err = c.ensureToken(ctx)
		if err != nil {
			return err
		}
		resp, err = c.doGet(ctx, path, query, token)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ciaobooking: GET %s returned %d: %s", path, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ciaobooking: decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.http.Do(req)
}

// FindClientByPhone searches the paginated client registry using the bare
// phone digits as the free-text search key and takes the first match.
func (c *Client) FindClientByPhone(ctx context.Context, digits string) (*models.ClientRecord, error) {
	q := url.Values{}
	q.Set("limit", "5")
	q.Set("page", "1")
	q.Set("search", digits)

	var resp struct {
		Data struct {
			Collection []clientDTO `json:"collection"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/public/clients/paginated", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.Collection) == 0 {
		return nil, nil
	}
	rec := resp.Data.Collection[0].toModel()
	return &rec, nil
}

// GetReservation looks a reservation up by its reference.
func (c *Client) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var resp struct {
		Data reservationDTO `json:"data"`
	}
	if err := c.get(ctx, "/api/public/reservations/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	res := resp.Data.toModel()
	return &res, nil
}

// ListReservations fetches reservations with the given status inside the
// date window.
func (c *Client) ListReservations(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	if code := statusWireCode(status); code != "" {
		q.Set("status", code)
	}
	q.Set("limit", "100")
	q.Set("offset", "0")

	var resp struct {
		Data struct {
			Collection []reservationDTO `json:"collection"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/public/reservations", q, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(resp.Data.Collection))
	for _, dto := range resp.Data.Collection {
		out = append(out, dto.toModel())
	}
	return out, nil
}

// statusWireCode maps a canonical status back to the numeric code the
// service filters on.
func statusWireCode(s models.ReservationStatus) string {
	switch s {
	case models.ReservationPending:
		return "1"
	case models.ReservationConfirmed:
		return "2"
	case models.ReservationCanceled:
		return "3"
	}
	return ""
}
