// Package api is a client for the headless REST endpoints that back the
// approver dashboard: the signed-in user account, the travel-request object
// collection, and each request's itinerary relation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SumanHE17/tripdesk/internal/logging"
	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

// Endpoint paths relative to the base URL.
const (
	PathMyUserAccount  = "/o/headless-admin-user/v1.0/my-user-account"
	PathTravelRequests = "/o/c/travelinfos/"
	pathItineraryFmt   = "/o/c/travelinfos/%d/itineraryRelation"
)

const (
	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 16 << 20
	// errorBodySnippet is how much of a failed response body is kept on StatusError.
	errorBodySnippet = 512
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tripdesk"
)

// ErrMalformedResponse is wrapped when a 2xx body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d (%s)", e.StatusCode, e.URL)
}

// IsUnauthorized reports whether err is a 401 or 403 StatusError.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

// UserAccount is the subset of my-user-account the dashboard uses.
type UserAccount struct {
	ID            int64  `json:"id"`
	EmailAddress  string `json:"emailAddress"`
	GivenName     string `json:"givenName"`
	FamilyName    string `json:"familyName"`
	AlternateName string `json:"alternateName"`
}

type itineraryPage struct {
	Items []travel.Itinerary `json:"items"`
}

// Client talks to the headless REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	// PageSize, when positive, is sent as pageSize on collection requests.
	PageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

// WithTimeout sets the HTTP client timeout; zero leaves the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithPageSize sets the collection pageSize parameter.
func WithPageSize(n int) Option {
	return func(c *Client) { c.PageSize = n }
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		UserAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MyUserAccount fetches the signed-in user's account.
func (c *Client) MyUserAccount(ctx context.Context, creds session.Credentials) (UserAccount, error) {
	var account UserAccount
	if err := c.getJSON(ctx, creds, PathMyUserAccount, nil, &account); err != nil {
		return UserAccount{}, fmt.Errorf("fetching user account: %w", err)
	}
	return account, nil
}

// TravelRequests fetches the travel-request collection.
func (c *Client) TravelRequests(ctx context.Context, creds session.Credentials) (travel.Collection, error) {
	var query url.Values
	if c.PageSize > 0 {
		query = url.Values{"pageSize": []string{strconv.Itoa(c.PageSize)}}
	}

	var coll travel.Collection
	if err := c.getJSON(ctx, creds, PathTravelRequests, query, &coll); err != nil {
		return travel.Collection{}, fmt.Errorf("fetching travel requests: %w", err)
	}
	if coll.Items == nil {
		coll.Items = []travel.TravelRequest{}
	}
	return coll, nil
}

// Itineraries fetches the itinerary records related to a travel request.
// A response without items yields an empty slice.
func (c *Client) Itineraries(ctx context.Context, creds session.Credentials, id int64) ([]travel.Itinerary, error) {
	var page itineraryPage
	if err := c.getJSON(ctx, creds, fmt.Sprintf(pathItineraryFmt, id), nil, &page); err != nil {
		return nil, fmt.Errorf("fetching itineraries for %d: %w", id, err)
	}
	if page.Items == nil {
		return []travel.Itinerary{}, nil
	}
	return page.Items, nil
}

func (c *Client) getJSON(
	ctx context.Context,
	creds session.Credentials,
	path string,
	query url.Values,
	out any,
) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", creds.AuthHeader())
	req.Header.Set("User-Agent", c.UserAgent)

	requestID := logging.NewTraceID()
	log := logging.FromContext(ctx)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Debug().Ctx(ctx).Str("component", "api").Str("request_id", requestID).
			Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).Str("component", "api").Str("request_id", requestID).
		Str("method", http.MethodGet).Str("path", path).Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).Msg("request completed")

	body := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, errorBodySnippet))
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(snippet)}
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
