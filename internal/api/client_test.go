package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

var testCreds = session.Credentials{Username: "approver@example.com", Password: "pw"}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", WithHTTPClient(server.Client()))
}

func assertHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, http.MethodGet, r.Method)
	assert.Equal(t, "application/json", r.Header.Get("Accept"))
	assert.Equal(t, testCreds.AuthHeader(), r.Header.Get("Authorization"))
	assert.Equal(t, "tripdesk", r.Header.Get("User-Agent"))
}

func TestMyUserAccount(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assertHeaders(t, r)
		assert.Equal(t, PathMyUserAccount, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 20123, "emailAddress": "approver@example.com", "givenName": "Ada"}`))
	})

	account, err := client.MyUserAccount(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, "approver@example.com", account.EmailAddress)
	assert.Equal(t, int64(20123), account.ID)
}

func TestMyUserAccount_Unauthorized(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"UNAUTHORIZED"}`))
	})

	_, err := client.MyUserAccount(context.Background(), testCreds)

	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, se.Body, "UNAUTHORIZED")
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Status: 401")
}

func TestTravelRequests(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assertHeaders(t, r)
		assert.Equal(t, PathTravelRequests, r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"items":[
			{"id":1,"firstName":"Anna","manager":"approver@example.com","approveStatus":{"key":"approved","name":"Approved"}},
			{"id":2,"firstName":"Bob","hod":"approver@example.com","travelBudget":"1500"}
		]}`))
	})

	coll, err := client.TravelRequests(context.Background(), testCreds)

	require.NoError(t, err)
	require.Len(t, coll.Items, 2)
	assert.Equal(t, travel.StatusApproved, coll.Items[0].StatusKey())
	assert.Equal(t, "1,500", coll.Items[1].TravelBudget.String())
}

func TestTravelRequests_PageSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithHTTPClient(server.Client()), WithPageSize(500))
	coll, err := client.TravelRequests(context.Background(), testCreds)

	require.NoError(t, err)
	assert.NotNil(t, coll.Items)
	assert.Empty(t, coll.Items)
}

func TestTravelRequests_Malformed(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": "nope"}`))
	})

	_, err := client.TravelRequests(context.Background(), testCreds)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestItineraries(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assertHeaders(t, r)
		assert.Equal(t, "/o/c/travelinfos/42/itineraryRelation", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[{"id":7,"origin":"Pune","destination":"Delhi"}]}`))
	})

	related, err := client.Itineraries(context.Background(), testCreds, 42)

	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, int64(7), related[0].ID)
}

func TestItineraries_MissingItems(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalCount":0}`))
	})

	related, err := client.Itineraries(context.Background(), testCreds, 42)

	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)
}

func TestItineraries_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	related, err := client.Itineraries(context.Background(), testCreds, 42)

	require.Error(t, err)
	assert.Nil(t, related)
	assert.False(t, IsUnauthorized(err))
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, WithTimeout(time.Second))
	_, err := client.MyUserAccount(context.Background(), testCreds)

	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestClient_Cancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, WithHTTPClient(server.Client()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.TravelRequests(ctx, testCreds)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_Options(t *testing.T) {
	client := NewClient("http://localhost:8080///", WithUserAgent("custom/1.0"), WithTimeout(5*time.Second))

	assert.Equal(t, "http://localhost:8080", client.BaseURL)
	assert.Equal(t, "custom/1.0", client.UserAgent)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
}
