package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SumanHE17/tripdesk/internal/api"
	"github.com/SumanHE17/tripdesk/internal/cli"
	"github.com/SumanHE17/tripdesk/internal/config"
)

const (
	testUser     = "approver@example.com"
	testPassword = "s3cret"
)

// fakeServer serves the three REST endpoints for testUser/testPassword.
type fakeServer struct {
	collectionStatus int
	itineraryStatus  int
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != testUser || pass != testPassword {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == api.PathMyUserAccount:
		fmt.Fprintf(w, `{"id": 7, "emailAddress": %q}`, testUser)
	case r.URL.Path == api.PathTravelRequests:
		if f.collectionStatus != 0 {
			w.WriteHeader(f.collectionStatus)
			return
		}
		fmt.Fprintf(w, `{"items": [
			{"id": 1, "firstName": "Anna", "lastName": "Berg", "travelPurpose": "Summit", "manager": %[1]q,
			 "travelBudget": 1500, "approveStatus": {"key": "pendingAtApprover1", "name": "Pending at Approver 1"}},
			{"id": 2, "firstName": "Bob", "lastName": "Cole", "hod": %[1]q,
			 "travelBudget": 9000, "approveStatus": {"key": "pendingAtApprover2", "name": "Pending at Approver 2"}},
			{"id": 3, "firstName": "Cara", "lastName": "Dunn", "manager": %[1]q,
			 "approveStatus": {"key": "rejected", "name": "Rejected"}},
			{"id": 4, "firstName": "Dan", "lastName": "Eve", "manager": "someone@example.com",
			 "approveStatus": {"key": "pendingAtApprover1", "name": "Pending at Approver 1"}}
		]}`, testUser)
	case r.URL.Path == "/o/c/travelinfos/1/itineraryRelation":
		if f.itineraryStatus != 0 {
			w.WriteHeader(f.itineraryStatus)
			return
		}
		_, _ = w.Write([]byte(`{"items": [
			{"id": 11, "from": "Oslo", "to": "Berlin"},
			{"id": 12, "from": "Berlin", "to": "Oslo"}
		]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// setupCLITest isolates the config home and points the client at a fake server.
func setupCLITest(t *testing.T, srv *fakeServer) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TRIPDESK_HOME", home)
	t.Setenv("TRIPDESK_CONFIG", "")
	t.Setenv("TRIPDESK_LOG_LEVEL", "error")
	t.Setenv("TERM", "dumb")

	if srv != nil {
		server := httptest.NewServer(srv)
		t.Cleanup(server.Close)
		t.Setenv("TRIPDESK_API_BASE_URL", server.URL)
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func withCreds(args ...string) []string {
	return append([]string{"--username", testUser, "--password", testPassword}, args...)
}

func TestList_Table(t *testing.T) {
	home := setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", withCreds("list")...)

	require.NoError(t, err)
	assert.Contains(t, out, "Waiting for My Approval")
	assert.Contains(t, out, "Anna Berg")
	assert.Contains(t, out, "Bob Cole")
	assert.Contains(t, out, "1,500")
	assert.NotContains(t, out, "Cara", "rejected requests are on another tab")
	assert.NotContains(t, out, "Dan", "requests of other approvers are never listed")
	assert.Contains(t, out, "Page 1/1")
	assert.FileExists(t, filepath.Join(home, "credentials.json"), "flag credentials are stored")
}

func TestList_JSONIncludesPagination(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", withCreds("list", "--output", "json", "--page-size", "5")...)
	require.NoError(t, err)

	var doc struct {
		Tab      string `json:"tab"`
		Identity string `json:"identity"`
		Items    []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			PageSize    int `json:"page_size"`
			TotalItems  int `json:"total_items"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "pending", doc.Tab)
	assert.Equal(t, testUser, doc.Identity)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.Pagination.CurrentPage)
	assert.Equal(t, 5, doc.Pagination.PageSize)
	assert.Equal(t, 2, doc.Pagination.TotalItems)
	assert.Equal(t, 1, doc.Pagination.TotalPages)
}

func TestList_NDJSONSortedAndFiltered(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", withCreds("list", "-o", "ndjson", "--sort", "budget:desc")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"firstName":"Bob"`)
	assert.Contains(t, lines[1], `"firstName":"Anna"`)

	out, err = execute(t, "", withCreds("list", "-o", "ndjson", "--tab", "rejected", "--search", "CARA")...)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"id":3`)
}

func TestList_FailSilent(t *testing.T) {
	setupCLITest(t, &fakeServer{collectionStatus: http.StatusInternalServerError})

	out, err := execute(t, "", withCreds("list")...)

	require.NoError(t, err)
	assert.Contains(t, out, "No data available")
}

func TestList_StrictReturnsFetchError(t *testing.T) {
	setupCLITest(t, &fakeServer{collectionStatus: http.StatusInternalServerError})

	_, err := execute(t, "", withCreds("list", "--strict")...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status: 500")
}

func TestList_StrictUnauthorized(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	_, err := execute(t, "", "--username", testUser, "--password", "wrong", "list", "--strict")

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.True(t, api.IsUnauthorized(err))
}

func TestList_NotSignedIn(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No data available")

	_, err = execute(t, "", "list", "--strict")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "page size", args: []string{"list", "--page-size", "7"}, want: "page-size"},
		{name: "page", args: []string{"list", "--page", "0"}, want: "page must be"},
		{name: "tab", args: []string{"list", "--tab", "archived"}, want: "unknown tab"},
		{name: "output", args: []string{"list", "--output", "xml"}, want: "unsupported output format"},
		{name: "sort", args: []string{"list", "--sort", "color"}, want: "invalid sort field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t, &fakeServer{})

			_, err := execute(t, "", tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDashboard_NonInteractiveFallsBackToList(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", withCreds()...)

	require.NoError(t, err)
	assert.Contains(t, out, "Waiting for My Approval")
	assert.Contains(t, out, "Anna Berg")
}

func TestShow(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	out, err := execute(t, "", withCreds("show", "1")...)

	require.NoError(t, err)
	assert.Contains(t, out, "Anna Berg")
	assert.Contains(t, out, "Summit")
	assert.Contains(t, out, "Itinerary (2)")
	assert.Contains(t, out, "Berlin")
}

func TestShow_ItineraryFailureShowsEmpty(t *testing.T) {
	setupCLITest(t, &fakeServer{itineraryStatus: http.StatusInternalServerError})

	out, err := execute(t, "", withCreds("show", "1")...)

	require.NoError(t, err)
	assert.Contains(t, out, "Anna Berg")
	assert.Contains(t, out, "No itinerary records")
}

func TestShow_Errors(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	_, err := execute(t, "", withCreds("show", "99")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, "", withCreds("show", "abc")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid travel request id")
}

func TestLogin_PromptsAndStores(t *testing.T) {
	home := setupCLITest(t, &fakeServer{})

	out, err := execute(t, testUser+"\n"+testPassword+"\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as "+testUser)

	data, err := os.ReadFile(filepath.Join(home, "credentials.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), testUser)

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Anna Berg", "stored credentials are restored")
}

func TestLogin_RejectedCredentialsNotStored(t *testing.T) {
	home := setupCLITest(t, &fakeServer{})

	_, err := execute(t, "", "login", "--username", testUser, "--password", "wrong")

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.NoFileExists(t, filepath.Join(home, "credentials.json"))
}

func TestLogin_MissingInput(t *testing.T) {
	setupCLITest(t, &fakeServer{})

	_, err := execute(t, "", "login")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input received")
}

func TestLogout(t *testing.T) {
	home := setupCLITest(t, &fakeServer{})
	credPath := filepath.Join(home, "credentials.json")

	_, err := execute(t, "", "login", "--username", testUser, "--password", testPassword)
	require.NoError(t, err)
	require.FileExists(t, credPath)

	out, err := execute(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.NoFileExists(t, credPath)
}

func TestExitError_Unwrap(t *testing.T) {
	cause := errors.New("denied")
	err := &cli.ExitError{Code: 2, Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "denied", err.Error())
}
