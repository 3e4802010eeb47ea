package client

// http_client.go = typed client for the bookplanner HTTP API.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/stats"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string   `json:"error"`
	Problems   []string `json:"problems"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Problems) > 0 {
		return fmt.Sprintf("%s (%d): %s", msg, e.StatusCode, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("%s (%d)", msg, e.StatusCode)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends body as JSON and decodes the response into out when non-nil.
func (c *HTTPClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(json.RawMessage); ok {
			reader = bytes.NewReader(raw)
		} else {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return err
			}
			reader = bytes.NewReader(jsonData)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	// check for non-2xx status code => surface the server's error body
	if response.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: response.StatusCode}
		_ = json.NewDecoder(response.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		data, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}
		*raw = data
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Books

func (c *HTTPClient) ListBooks(query dto.BookListQuery) (*dto.BookListResponse, error) {
	params := url.Values{}
	for key, value := range map[string]string{
		"status":   query.Status,
		"priority": query.Priority,
		"search":   query.Search,
		"sort":     query.Sort,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}
	path := "/api/books"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp dto.BookListResponse
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetBook(id int64) (*models.Book, error) {
	var book models.Book
	if err := c.do(http.MethodGet, bookPath(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) AddBook(request dto.CreateBookRequest) (*models.Book, error) {
	var book models.Book
	if err := c.do(http.MethodPost, "/api/books", request, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) UpdateBook(id int64, request dto.UpdateBookRequest) (*models.Book, error) {
	var book models.Book
	if err := c.do(http.MethodPatch, bookPath(id), request, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) DeleteBook(id int64) error {
	err := c.do(http.MethodDelete, bookPath(id), nil, nil)
	return err
}

func (c *HTTPClient) Categories() (map[string]int, error) {
	var resp dto.CategoryCountsResponse
	if err := c.do(http.MethodGet, "/api/books/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *HTTPClient) AddSession(id int64, request dto.AddSessionRequest) (*models.Book, error) {
	var book models.Book
	if err := c.do(http.MethodPost, bookPath(id)+"/sessions", request, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func bookPath(id int64) string {
	return "/api/books/" + strconv.FormatInt(id, 10)
}

// Goals

func (c *HTTPClient) GetGoals() (*dto.GoalsResponse, error) {
	var resp dto.GoalsResponse
	if err := c.do(http.MethodGet, "/api/goals", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PatchGoals updates one period, "monthly" or "weekly".
func (c *HTTPClient) PatchGoals(period string, patch dto.GoalTargetPatch) (*dto.GoalsResponse, error) {
	var resp dto.GoalsResponse
	if err := c.do(http.MethodPatch, "/api/goals/"+period, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetGoals() (*dto.GoalsResponse, error) {
	var resp dto.GoalsResponse
	if err := c.do(http.MethodPost, "/api/goals/reset", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DailyTargets() (*stats.DailyTargets, error) {
	var resp stats.DailyTargets
	if err := c.do(http.MethodGet, "/api/goals/daily", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats

func (c *HTTPClient) Stats(rangeName, category string) (*dto.StatsReport, error) {
	params := url.Values{}
	if rangeName != "" {
		params.Set("range", rangeName)
	}
	if category != "" {
		params.Set("category", category)
	}
	path := "/api/stats"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var report dto.StatsReport
	if err := c.do(http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) Speed(last int) (*dto.SpeedResponse, error) {
	path := "/api/stats/speed"
	if last > 0 {
		path += "?last=" + strconv.Itoa(last)
	}
	var resp dto.SpeedResponse
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Data

// Export returns the raw export document so it can be written verbatim.
func (c *HTTPClient) Export() (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(http.MethodGet, "/api/data/export", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *HTTPClient) Import(document json.RawMessage) (*dto.ImportSummary, error) {
	var summary dto.ImportSummary
	if err := c.do(http.MethodPost, "/api/data/import", document, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) ClearData() error {
	err := c.do(http.MethodDelete, "/api/data", nil, nil)
	return err
}

// Notifications

func (c *HTTPClient) NotificationStatus() (*dto.NotificationStatusResponse, error) {
	var resp dto.NotificationStatusResponse
	if err := c.do(http.MethodGet, "/api/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SetNotifications(enabled bool) (*dto.NotificationStatusResponse, error) {
	var resp dto.NotificationStatusResponse
	body := dto.UpdateNotificationsRequest{Enabled: &enabled}
	if err := c.do(http.MethodPut, "/api/notifications", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SendTestNotification() (*models.Notification, error) {
	var n models.Notification
	if err := c.do(http.MethodPost, "/api/notifications/test", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
