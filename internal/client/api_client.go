package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/pkg/entity"
	"github.com/limbo/moodtrack/pkg/httputil"
)

// MoodStore is the remote account and mood store.
type MoodStore interface {
	Register(ctx context.Context, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	GetMoods(ctx context.Context, s *Session, limit int) ([]entity.MoodEntry, error)
	SubmitMood(ctx context.Context, s *Session, entry *entity.MoodEntry) (*entity.MoodEntry, error)
	GetTrends(ctx context.Context, s *Session) ([]mood.TrendPoint, error)
}

type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type submitRequest struct {
	UserID   string `json:"userId"`
	Mood     int    `json:"mood"`
	MoodText string `json:"moodText"`
	Note     string `json:"note"`
}

type submitResponse struct {
	Data *entity.MoodEntry `json:"data"`
}

func (c *APIClient) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, credentials{email, password}, &resp); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(resp.UserID)
	if err != nil {
		return uuid.Nil, &StoreError{Status: http.StatusCreated, Message: "malformed user id in response"}
	}
	return id, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(resp.UserID)
	if err != nil || resp.Token == "" {
		return nil, &StoreError{Status: http.StatusOK, Message: "malformed login response"}
	}
	return &Session{UserID: id, Email: resp.Email, Token: resp.Token}, nil
}

func (c *APIClient) GetMoods(ctx context.Context, s *Session, limit int) ([]entity.MoodEntry, error) {
	q := url.Values{}
	q.Set("userId", s.UserID.String())
	q.Set("limit", strconv.Itoa(limit))
	var resp httputil.DataResponse[[]entity.MoodEntry]
	if err := c.do(ctx, http.MethodGet, "/getmoods?"+q.Encode(), s, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *APIClient) SubmitMood(ctx context.Context, s *Session, entry *entity.MoodEntry) (*entity.MoodEntry, error) {
	var resp submitResponse
	err := c.do(ctx, http.MethodPost, "/submitmood", s, submitRequest{
		UserID:   s.UserID.String(),
		Mood:     entry.Mood,
		MoodText: entry.MoodText,
		Note:     entry.Note,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *APIClient) GetTrends(ctx context.Context, s *Session) ([]mood.TrendPoint, error) {
	q := url.Values{}
	q.Set("userId", s.UserID.String())
	var resp httputil.DataResponse[[]mood.TrendPoint]
	if err := c.do(ctx, http.MethodGet, "/trends?"+q.Encode(), s, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, s *Session, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return errors.New("encoding request error: " + err.Error())
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.New("building request error: " + err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &StoreError{Message: err.Error()}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &StoreError{Status: resp.StatusCode, Message: "reading response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp httputil.ErrorResponse
		msg := http.StatusText(resp.StatusCode)
		if sonic.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
			msg = errResp.Message
		}
		return &StoreError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return &StoreError{Status: resp.StatusCode, Message: "decoding response: " + err.Error()}
	}
	return nil
}
