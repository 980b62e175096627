// Package upstream talks to the board backend: the application that owns
// boards, lists, tasks and accounts and renders the board page.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"board-view-api/internal/models"
)

// Cookie and header names shared with the board backend.
const (
	CSRFCookie    = "csrftoken"
	SessionCookie = "sessionid"
	CSRFHeader    = "X-CSRFToken"
)

// Backend paths.
const (
	MoveTaskPath      = "/boards/task/move/"
	CookieConsentPath = "/accounts/cookie-consent/"
	LogoutPath        = "/accounts/logout/"
)

// Credentials are the viewer's backend cookies, forwarded on every call.
type Credentials struct {
	CSRFToken string
	SessionID string
}

// StatusError reports a non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Client is a typed HTTP client for the board backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client. A nil httpClient gets a default one with timeout.
func New(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type moveRequest struct {
	TaskID    string `json:"task_id"`
	NewListID string `json:"new_list_id"`
}

// MoveTask persists a card's new list.
func (c *Client) MoveTask(ctx context.Context, creds Credentials, taskID, newListID string) error {
	return c.do(ctx, http.MethodPost, MoveTaskPath, creds, moveRequest{TaskID: taskID, NewListID: newListID}, nil)
}

type consentPayload struct {
	Choice models.ConsentChoice `json:"choice"`
}

// GetConsent returns the stored consent choice, or "" when none is stored.
func (c *Client) GetConsent(ctx context.Context, creds Credentials) (models.ConsentChoice, error) {
	var out consentPayload
	if err := c.do(ctx, http.MethodGet, CookieConsentPath, creds, nil, &out); err != nil {
		return "", err
	}
	if !out.Choice.Valid() {
		return "", nil
	}
	return out.Choice, nil
}

// PostConsent stores a consent choice on the backend.
func (c *Client) PostConsent(ctx context.Context, creds Credentials, choice models.ConsentChoice) error {
	return c.do(ctx, http.MethodPost, CookieConsentPath, creds, consentPayload{Choice: choice}, nil)
}

// Logout ends the viewer's backend session, as submitting the logout form does.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	form := url.Values{"csrfmiddlewaretoken": {creds.CSRFToken}}
	req, err := c.newRequest(ctx, http.MethodPost, LogoutPath, creds, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// The backend answers a logout with a redirect; that is success.
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
	}
	return nil
}

// BoardPath is where the backend serves a board's view-model.
func BoardPath(boardID string) string {
	return fmt.Sprintf("/boards/%s/data/", url.PathEscape(boardID))
}

// FetchBoard loads the view-model of a board.
func (c *Client) FetchBoard(ctx context.Context, creds Credentials, boardID string) (*models.Board, error) {
	var b models.Board
	if err := c.do(ctx, http.MethodGet, BoardPath(boardID), creds, nil, &b); err != nil {
		return nil, err
	}
	b.Normalize()
	return &b, nil
}

func (c *Client) do(ctx context.Context, method, path string, creds Credentials, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, creds, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, creds Credentials, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if creds.CSRFToken != "" {
		req.Header.Set(CSRFHeader, creds.CSRFToken)
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: creds.CSRFToken})
	}
	if creds.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: creds.SessionID})
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
