package strava

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastClient disables rate limiting delays for tests.
func fastClient(baseURL string) *Client {
	return NewClient(baseURL, 60_000, testLogger())
}

func testCreds() Credentials {
	return Credentials{
		ClientID:     "12345",
		ClientSecret: "shhh",
		RefreshToken: "refresh-me",
	}
}

func TestRefreshAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/oauth/token", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12345", q.Get("client_id"))
		assert.Equal(t, "shhh", q.Get("client_secret"))
		assert.Equal(t, "refresh_token", q.Get("grant_type"))
		assert.Equal(t, "refresh-me", q.Get("refresh_token"))
		assert.Equal(t, "activity:read_all", q.Get("scope"))

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-abc"})
	}))
	defer srv.Close()

	token, err := fastClient(srv.URL).RefreshAccessToken(t.Context(), testCreds())
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
}

func TestRefreshAccessTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Bad Request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).RefreshAccessToken(t.Context(), testCreds())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestRefreshAccessTokenMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).RefreshAccessToken(t.Context(), testCreds())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}

// activityPage renders n minimal activity objects as a JSON array, with ids
// starting at first.
func activityPage(first, n int) string {
	items := make([]string, n)
	for i := range n {
		items[i] = fmt.Sprintf(`{"id":%d}`, first+i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestFetchActivitiesPagination(t *testing.T) {
	var pagesSeen []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/athlete/activities", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		pagesSeen = append(pagesSeen, page)

		// Full first page, short second page ends pagination.
		switch page {
		case 1:
			_, _ = io.WriteString(w, activityPage(1, 200))
		case 2:
			_, _ = io.WriteString(w, activityPage(201, 3))
		default:
			t.Errorf("unexpected page %d", page)
		}
	}))
	defer srv.Close()

	activities, err := fastClient(srv.URL).FetchActivities(t.Context(), "token-abc")
	require.NoError(t, err)
	assert.Len(t, activities, 203)
	assert.Equal(t, []int{1, 2}, pagesSeen)
	assert.JSONEq(t, `{"id":1}`, string(activities[0]))
	assert.JSONEq(t, `{"id":203}`, string(activities[202]))
}

func TestFetchActivitiesEmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	activities, err := fastClient(srv.URL).FetchActivities(t.Context(), "token-abc")
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestFetchActivitiesAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Authorization Error"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).FetchActivities(t.Context(), "bad-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
