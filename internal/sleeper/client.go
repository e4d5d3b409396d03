// Package sleeper provides a minimal client for the public Sleeper API.
//
// Endpoints return the raw response body; decoding is left to the normalize
// package so cached and live payloads go through the same code.
package sleeper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
)

const (
	DefaultAPIEndpoint   = "https://api.sleeper.app/v1"
	DefaultStatsEndpoint = "https://api.sleeper.com"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Status)
}

// NotFound reports whether err is an HTTP 404 from Sleeper.
func NotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusNotFound
}

// Client is a Sleeper API client. All endpoints share one circuit breaker.
type Client struct {
	apiURL   string
	statsURL string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	log      logrus.FieldLogger
}

// NewClient returns a client for the given endpoints. Empty endpoints fall
// back to the public Sleeper hosts.
func NewClient(apiURL, statsURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIEndpoint
	}
	if statsURL == "" {
		statsURL = DefaultStatsEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sleeper-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// 4xx responses do not count as failures.
			var he *HTTPError
			if errors.As(err, &he) {
				return he.Status < 500
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("sleeper circuit breaker state changed")
		},
	})
	return &Client{
		apiURL:   strings.TrimRight(apiURL, "/"),
		statsURL: strings.TrimRight(statsURL, "/"),
		http:     &http.Client{Timeout: timeout},
		breaker:  cb,
		log:      log,
	}
}

// get performs a GET against base+path and returns the body.
func (c *Client) get(ctx context.Context, base, path string) ([]byte, error) {
	u := base + path
	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", u, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &HTTPError{URL: u, Status: resp.StatusCode}
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", u, err)
		}
		c.log.WithFields(logrus.Fields{
			"url":      u,
			"bytes":    len(body),
			"duration": time.Since(start).Round(time.Millisecond).String(),
		}).Debug("fetched")
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("GET %s: %w", u, err)
		}
		return nil, err
	}
	return out.([]byte), nil
}

// GetUser returns the user object for a username or user id.
func (c *Client) GetUser(ctx context.Context, username string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/user/"+url.PathEscape(username))
}

// GetUserID resolves a username to its user id.
func (c *Client) GetUserID(ctx context.Context, username string) (string, error) {
	body, err := c.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(body, "user_id").String()
	if id == "" {
		return "", fmt.Errorf("user %q not found", username)
	}
	return id, nil
}

// GetUserLeagues returns every league of a user for a sport and season.
func (c *Client) GetUserLeagues(ctx context.Context, userID, sport, season string) ([]byte, error) {
	return c.get(ctx, c.apiURL, fmt.Sprintf("/user/%s/leagues/%s/%s",
		url.PathEscape(userID), url.PathEscape(sport), url.PathEscape(season)))
}

// GetLeague returns the league object.
func (c *Client) GetLeague(ctx context.Context, leagueID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/league/"+url.PathEscape(leagueID))
}

// GetLeagueUsers returns the league members.
func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/league/"+url.PathEscape(leagueID)+"/users")
}

// GetLeagueRosters returns the league rosters.
func (c *Client) GetLeagueRosters(ctx context.Context, leagueID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/league/"+url.PathEscape(leagueID)+"/rosters")
}

// GetLeagueDrafts returns every draft of a league.
func (c *Client) GetLeagueDrafts(ctx context.Context, leagueID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/league/"+url.PathEscape(leagueID)+"/drafts")
}

// GetDraft returns one draft.
func (c *Client) GetDraft(ctx context.Context, draftID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/draft/"+url.PathEscape(draftID))
}

// GetDraftPicks returns every pick made in a draft.
func (c *Client) GetDraftPicks(ctx context.Context, draftID string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/draft/"+url.PathEscape(draftID)+"/picks")
}

// GetPlayers returns the full player catalog for a sport (several MB).
func (c *Client) GetPlayers(ctx context.Context, sport string) ([]byte, error) {
	return c.get(ctx, c.apiURL, "/players/"+url.PathEscape(sport))
}

// GetProjections returns season projections from the stats host.
func (c *Client) GetProjections(ctx context.Context, sport, season, seasonType string) ([]byte, error) {
	q := url.Values{}
	q.Set("season_type", seasonType)
	q.Set("order_by", "pts_std")
	return c.get(ctx, c.statsURL, fmt.Sprintf("/projections/%s/%s?%s",
		url.PathEscape(sport), url.PathEscape(season), q.Encode()))
}
