package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTokens struct {
	calls int
	err   error
}

func (c *countingTokens) Token(_ context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	c.calls++
	return fmt.Sprintf("token-%d", c.calls), nil
}

func TestFreshBearerTokenPerCall(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"buckets":[]}`)
	}))
	defer server.Close()

	tokens := &countingTokens{}
	client := NewClient(server.URL, server.Client(), tokens)

	_, err := client.ListPersonas(context.Background())
	require.NoError(t, err)
	_, err = client.ListPersonas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer token-1", "Bearer token-2"}, seen)
}

func TestTokenFailureSurfacesWithoutRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{err: domain.ErrTokenNotFound})

	_, err := client.ListAccounts(context.Background())
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
	assert.Zero(t, requests)
}

func TestNonSuccessStatusCarriesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"detail":"bucket name already exists"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	err := client.CreatePersona(context.Background(), "Work", "")
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "bucket name already exists", apiErr.Detail)
}

func TestNonJSONErrorBodyDegradesToStatusOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream exploded</html>")
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	err := client.Health(context.Background())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Detail)
}

func TestMissingListsNormalizeToEmptySlices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, accounts)
	assert.Empty(t, accounts)

	personas, err := client.ListPersonas(context.Background())
	require.NoError(t, err)
	require.NotNil(t, personas)
	assert.Empty(t, personas)
}

func TestAccountIDsDecodeFromNumbersAndStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"accounts":[
			{"id":17,"platform":"github","account_name":"alice","url":"https://github.com/alice","bucket":{"id":2,"name":"Work"}},
			{"id":"acc-9","platform":"twitter","account_name":"alice","url":"","bucket":null}
		]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, domain.AccountID("17"), accounts[0].ID)
	require.NotNil(t, accounts[0].Bucket)
	assert.Equal(t, domain.PersonaID(2), accounts[0].Bucket.ID)

	assert.Equal(t, domain.AccountID("acc-9"), accounts[1].ID)
	assert.Nil(t, accounts[1].Bucket)
}

func TestReassignSendsExplicitNullWhenUnassigning(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/accounts/a1/bucket", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	require.NoError(t, client.ReassignAccount(context.Background(), "a1", nil))
	assert.JSONEq(t, `{"bucket_id":null}`, string(body))

	target := domain.PersonaID(2)
	require.NoError(t, client.ReassignAccount(context.Background(), "a1", &target))
	assert.JSONEq(t, `{"bucket_id":2}`, string(body))
}

func TestScopedRequestsOmitBucketIDForAllAccounts(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"summary":"## Accounts"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	_, err := client.GenerateSummary(context.Background(), nil)
	require.NoError(t, err)
	_, hasKey := body["bucket_id"]
	assert.False(t, hasKey, "all-accounts scope must omit bucket_id entirely")

	scope := domain.PersonaID(3)
	_, err = client.GenerateSummary(context.Background(), &scope)
	require.NoError(t, err)
	assert.Equal(t, float64(3), body["bucket_id"])
}

func TestSearchAccountsDecodesCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])
		fmt.Fprint(w, `{"total_found":12,"new_accounts_saved":5}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	result, err := client.SearchAccounts(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 12, result.TotalFound)
	assert.Equal(t, 5, result.NewAccountsSaved)
}

func TestSplitPersonasDecodesOutcome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"buckets_created":2,"accounts_assigned":7,"personas":[
			{"name":"Developer","platforms":["github","gitlab"]},
			{"name":"Social","platforms":null}
		]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{})

	result, err := client.SplitPersonas(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.BucketsCreated)
	assert.Equal(t, 7, result.AccountsAssigned)
	require.Len(t, result.Personas, 2)
	assert.Equal(t, []string{"github", "gitlab"}, result.Personas[0].Platforms)
	assert.Equal(t, []string{}, result.Personas[1].Platforms)
}

func TestHealthSkipsAuthentication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &countingTokens{err: errors.New("no token anywhere")})

	require.NoError(t, client.Health(context.Background()))
}

func TestParseTimestampFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", "2026-08-30T10:15:00Z", time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)},
		{"isoformat micros", "2026-08-30T10:15:00.250000", time.Date(2026, 8, 30, 10, 15, 0, 250000000, time.UTC)},
		{"isoformat bare", "2026-08-30T10:15:00", time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday-ish", time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(parseTimestamp(tc.raw)), "raw %q", tc.raw)
		})
	}
}
