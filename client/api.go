package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPSessionAPI talks to the session endpoints for one user. The session
// endpoints sit behind auth, so every request carries the token issued at
// login.
type HTTPSessionAPI struct {
	baseURL string
	userID  string
	token   string
	client  *http.Client
}

func NewHTTPSessionAPI(baseURL, userID, token string) *HTTPSessionAPI {
	return &HTTPSessionAPI{
		baseURL: baseURL,
		userID:  userID,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *HTTPSessionAPI) get(u string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	return a.client.Do(req)
}

// FetchSession GETs the session resource for a date. Transport failures are
// returned as err; HTTP-level rejection is reported through the status code.
func (a *HTTPSessionAPI) FetchSession(date string) (*SessionView, int, error) {
	u := fmt.Sprintf("%s/api/sessions/%s/%s", a.baseURL, url.PathEscape(a.userID), url.PathEscape(date))
	resp, err := a.get(u)
	if err != nil {
		return nil, 0, fmt.Errorf("session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}
	var view SessionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode session: %w", err)
	}
	return &view, resp.StatusCode, nil
}

// FetchWeeklySummary GETs the rollup for the week starting at startDate.
func (a *HTTPSessionAPI) FetchWeeklySummary(startDate string) (*WeeklySummary, error) {
	u := fmt.Sprintf("%s/api/sessions/%s/weekly-summary?start_date=%s",
		a.baseURL, url.PathEscape(a.userID), url.QueryEscape(startDate))
	resp, err := a.get(u)
	if err != nil {
		return nil, fmt.Errorf("weekly summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("weekly summary status %d", resp.StatusCode)
	}
	var summary WeeklySummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decode weekly summary: %w", err)
	}
	return &summary, nil
}
