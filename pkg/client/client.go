// Package client is a Go SDK for the itfit HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

type Client struct {
	http *resty.Client
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Healthy reports the service health flag.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return false, err
	}
	return out.Status == "healthy", nil
}

// GetDocument fetches the full document.
func (c *Client) GetDocument(ctx context.Context) (*Document, error) {
	return c.document(ctx, http.MethodGet, "/api/document", nil)
}

// UpdateSettings merges patch into the stored settings.
func (c *Client) UpdateSettings(ctx context.Context, patch SettingsPatch) (*Document, error) {
	return c.document(ctx, http.MethodPut, "/api/settings", patch)
}

// UpdateDailyLog merges patch into the log for date. Pass "today" for the
// server's current day.
func (c *Client) UpdateDailyLog(ctx context.Context, date string, patch DailyLogPatch) (*Document, error) {
	return c.document(ctx, http.MethodPatch, "/api/daily-logs/"+url.PathEscape(date), patch)
}

// AppendWorkoutLog records a workout; the server assigns an id and date when empty.
func (c *Client) AppendWorkoutLog(ctx context.Context, log WorkoutLog) (*Document, error) {
	return c.document(ctx, http.MethodPost, "/api/workout-logs", log)
}

func (c *Client) ResetDailyLogs(ctx context.Context) (*Document, error) {
	return c.document(ctx, http.MethodDelete, "/api/daily-logs", nil)
}

func (c *Client) ResetWorkoutLogs(ctx context.Context) (*Document, error) {
	return c.document(ctx, http.MethodDelete, "/api/workout-logs", nil)
}

func (c *Client) ResetAll(ctx context.Context) (*Document, error) {
	return c.document(ctx, http.MethodDelete, "/api/document", nil)
}

// Export downloads the pretty-printed JSON backup.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/api/export")
}

// ExportDailyCSV downloads daily logs as CSV.
func (c *Client) ExportDailyCSV(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/api/export/daily.csv")
}

// ExportWorkoutCSV downloads logged exercises as CSV.
func (c *Client) ExportWorkoutCSV(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/api/export/workouts.csv")
}

// ExportWorkbook downloads daily logs and exercises as an XLSX workbook.
func (c *Client) ExportWorkbook(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/api/export/itfit.xlsx")
}

// Import replaces the stored document with snapshot. A rejected snapshot
// yields an error for which IsValidationError is true.
func (c *Client) Import(ctx context.Context, snapshot []byte) (*Document, error) {
	return c.document(ctx, http.MethodPost, "/api/import", snapshot)
}

// Dashboard fetches streaks, weekly stats and today's suggestion.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LastWorkout returns the most recent workout for template or ErrNotFound.
func (c *Client) LastWorkout(ctx context.Context, template Template) (*WorkoutLog, error) {
	var out WorkoutLog
	if err := c.do(ctx, http.MethodGet, "/api/workouts/last/"+url.PathEscape(string(template)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LastExercise returns exerciseKey from the most recent workout of template
// or ErrNotFound.
func (c *Client) LastExercise(ctx context.Context, template Template, exerciseKey string) (*ExerciseLog, error) {
	var out ExerciseLog
	path := "/api/workouts/last/" + url.PathEscape(string(template)) + "?exercise=" + url.QueryEscape(exerciseKey)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) document(ctx context.Context, method, path string, body any) (*Document, error) {
	var out Document
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.send(ctx, method, path, body, out)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) (*resty.Response, error) {
	var eb errorBody
	req := c.http.R().SetContext(ctx).SetError(&eb)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		requestsTotal.WithLabelValues(method, "transport_error").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		requestsTotal.WithLabelValues(method, "ok").Inc()
		return resp, nil
	}

	requestsTotal.WithLabelValues(method, "api_error").Inc()
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		field := eb.Field
		if field == "" {
			field = "request"
		}
		return nil, model.NewValidationError(field, eb.Message)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	default:
		msg := eb.Message
		if msg == "" {
			msg = resp.String()
		}
		return nil, &APIError{Status: resp.StatusCode(), Message: msg}
	}
}
