package api

import (
	"Scribz/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError — ответ сервера с кодом не 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.Status)
	}
	return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
}

// AuthResponse — ответ signup/login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  model.UserSummary `json:"user"`
}

// NoteInput — тело создания заметки.
type NoteInput struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Color   string `json:"color,omitempty"`
}

// NotePatch — тело частичного обновления; nil-поля не отправляются.
type NotePatch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
}

// Client вызывает HTTP API сервера. Учётные данные не хранит:
// каждый авторизованный вызов получает токен аргументом.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Do отправляет запрос с JSON-телом payload (если не nil) и декодирует ответ в out (если не nil).
// Ответы с кодом не 2xx возвращаются как *APIError.
func (c *Client) Do(ctx context.Context, method, path string, payload any, token string, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) Signup(ctx context.Context, email, password string) (*AuthResponse, error) {
	var res AuthResponse
	err := c.Do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{"email": email, "password": password}, "", &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var res AuthResponse
	err := c.Do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, "", &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Me(ctx context.Context, token string) (*model.UserSummary, error) {
	var u model.UserSummary
	if err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil, token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListNotes(ctx context.Context, token, filter, search string) ([]model.Note, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/notes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	notes := []model.Note{}
	if err := c.Do(ctx, http.MethodGet, path, nil, token, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, token string, in NoteInput) (*model.Note, error) {
	return c.noteCall(ctx, http.MethodPost, "/api/notes", in, token)
}

func (c *Client) GetNote(ctx context.Context, token, id string) (*model.Note, error) {
	return c.noteCall(ctx, http.MethodGet, notePath(id, ""), nil, token)
}

func (c *Client) UpdateNote(ctx context.Context, token, id string, patch NotePatch) (*model.Note, error) {
	return c.noteCall(ctx, http.MethodPut, notePath(id, ""), patch, token)
}

func (c *Client) ToggleFavorite(ctx context.Context, token, id string) (*model.Note, error) {
	return c.noteCall(ctx, http.MethodPatch, notePath(id, "/favorite"), nil, token)
}

func (c *Client) ToggleTrash(ctx context.Context, token, id string) (*model.Note, error) {
	return c.noteCall(ctx, http.MethodPatch, notePath(id, "/trash"), nil, token)
}

func (c *Client) DeleteNote(ctx context.Context, token, id string) error {
	return c.Do(ctx, http.MethodDelete, notePath(id, ""), nil, token, nil)
}

func (c *Client) noteCall(ctx context.Context, method, path string, payload any, token string) (*model.Note, error) {
	var n model.Note
	if err := c.Do(ctx, method, path, payload, token, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func notePath(id, suffix string) string {
	return "/api/notes/" + url.PathEscape(id) + suffix
}
