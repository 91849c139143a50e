package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/chimera-sh/chimera-cli/internal/ports"
)

const (
	userAgent       = "chimera-cli"
	maxResponseSize = 1 << 20
)

// Client is the HTTP data access layer over the Chimera backend. Every
// call acquires a fresh bearer token, performs exactly one request, and
// maps non-2xx responses to *domain.APIError carrying the server detail.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenSource
}

var _ ports.DirectoryClient = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, tokens ports.TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &payload); err != nil {
		return domain.User{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var envelope sessionsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &envelope); err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(envelope.Sessions))
	for _, payload := range envelope.Sessions {
		sessions = append(sessions, payload.toDomain())
	}

	return sessions, nil
}

func (c *Client) ListPersonas(ctx context.Context) ([]domain.Persona, error) {
	var envelope bucketsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/buckets", nil, &envelope); err != nil {
		return nil, err
	}

	personas := make([]domain.Persona, 0, len(envelope.Buckets))
	for _, payload := range envelope.Buckets {
		personas = append(personas, payload.toDomain())
	}

	return personas, nil
}

func (c *Client) CreatePersona(ctx context.Context, name, description string) error {
	body := createBucketRequest{BucketName: name, Description: description}
	return c.do(ctx, http.MethodPost, "/api/buckets", body, nil)
}

func (c *Client) RenamePersona(ctx context.Context, id domain.PersonaID, name string) error {
	body := renameBucketRequest{BucketName: name}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/buckets/%d", id), body, nil)
}

func (c *Client) DeletePersona(ctx context.Context, id domain.PersonaID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/buckets/%d", id), nil, nil)
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var envelope accountsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &envelope); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(envelope.Accounts))
	for _, payload := range envelope.Accounts {
		accounts = append(accounts, payload.toDomain())
	}

	return accounts, nil
}

func (c *Client) ReassignAccount(ctx context.Context, id domain.AccountID, persona *domain.PersonaID) error {
	body := reassignRequest{}
	if persona != nil {
		bucketID := int64(*persona)
		body.BucketID = &bucketID
	}

	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/accounts/%s/bucket", id), body, nil)
}

func (c *Client) SearchAccounts(ctx context.Context, username string) (domain.SearchResult, error) {
	var response searchResponse
	if err := c.do(ctx, http.MethodPost, "/api/search-accounts", searchRequest{Username: username}, &response); err != nil {
		return domain.SearchResult{}, err
	}

	return domain.SearchResult{
		TotalFound:       response.TotalFound,
		NewAccountsSaved: response.NewAccountsSaved,
	}, nil
}

func (c *Client) GenerateSummary(ctx context.Context, scope *domain.PersonaID) (string, error) {
	var response summaryResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate-summary", scopedBody(scope), &response); err != nil {
		return "", err
	}

	return response.Summary, nil
}

func (c *Client) SplitPersonas(ctx context.Context, scope *domain.PersonaID) (domain.SplitResult, error) {
	var response splitResponse
	if err := c.do(ctx, http.MethodPost, "/api/split-personas", scopedBody(scope), &response); err != nil {
		return domain.SplitResult{}, err
	}

	result := domain.SplitResult{
		BucketsCreated:   response.BucketsCreated,
		AccountsAssigned: response.AccountsAssigned,
		Personas:         make([]domain.SplitPersona, 0, len(response.Personas)),
	}
	for _, persona := range response.Personas {
		platforms := persona.Platforms
		if platforms == nil {
			platforms = []string{}
		}
		result.Personas = append(result.Personas, domain.SplitPersona{
			Name:      persona.Name,
			Platforms: platforms,
		})
	}

	return result, nil
}

// Health probes the unauthenticated /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return apiError(response.StatusCode, body)
	}

	return nil
}

func scopedBody(scope *domain.PersonaID) scopedRequest {
	body := scopedRequest{}
	if scope != nil {
		bucketID := int64(*scope)
		body.BucketID = &bucketID
	}

	return body
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("acquire bearer token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("User-Agent", userAgent)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return apiError(response.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func apiError(status int, body []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Detail) != "" {
		return &domain.APIError{Status: status, Detail: strings.TrimSpace(parsed.Detail)}
	}

	return &domain.APIError{Status: status}
}
