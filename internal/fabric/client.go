package fabric

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/auth"
)

// DefaultBaseURL is the public Fabric REST API root.
const DefaultBaseURL = "https://api.fabric.microsoft.com/v1"

// DefaultAudience is the resource audience tokens are requested for.
const DefaultAudience = "https://api.fabric.microsoft.com"

// APIError is a non-2xx upstream response. It preserves the literal
// status code and body so an operator can act without re-running.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fabric API returned %d: %s", e.StatusCode, e.Body)
}

// Client is a thin Fabric REST client. It injects a bearer token and a
// client request id on every call and decodes the {"value": [...]}
// listing envelope. It does not retry; callers see each upstream
// status exactly once.
type Client struct {
	baseURL  string
	audience string
	tokens   auth.TokenProvider
	http     *http.Client
	log      *zap.Logger
}

func NewClient(baseURL, audience string, tokens auth.TokenProvider, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if audience == "" {
		audience = DefaultAudience
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		audience: audience,
		tokens:   tokens,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

// ListLakehouses lists the lakehouses in a workspace.
func (c *Client) ListLakehouses(ctx context.Context, workspaceID string) ([]Item, error) {
	return c.list(ctx, fmt.Sprintf("%s/workspaces/%s/lakehouses", c.baseURL, workspaceID))
}

// ListSQLEndpoints lists SQL endpoints through the dedicated listing
// API. This API is not available in every workspace; a non-200 comes
// back as *APIError and the resolver falls back to ListItems.
func (c *Client) ListSQLEndpoints(ctx context.Context, workspaceID string) ([]Item, error) {
	return c.list(ctx, fmt.Sprintf("%s/workspaces/%s/sqlEndpoints", c.baseURL, workspaceID))
}

// ListItems lists all items in a workspace regardless of type.
func (c *Client) ListItems(ctx context.Context, workspaceID string) ([]Item, error) {
	return c.list(ctx, fmt.Sprintf("%s/workspaces/%s/items", c.baseURL, workspaceID))
}

// TriggerRefresh starts a metadata refresh on a SQL endpoint with an
// empty request body. The response is returned unclassified.
func (c *Client) TriggerRefresh(ctx context.Context, workspaceID, endpointID string) (*TriggerResponse, error) {
	url := fmt.Sprintf("%s/workspaces/%s/sqlEndpoints/%s/refreshMetadata", c.baseURL, workspaceID, endpointID)
	status, header, body, err := c.do(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	c.log.Debug("refresh triggered",
		zap.String("endpoint_id", endpointID),
		zap.Int("status", status))
	return &TriggerResponse{
		StatusCode: status,
		Location:   header.Get("Location"),
		Body:       string(body),
	}, nil
}

// PollOperation queries the status location handed out by an accepted
// refresh trigger.
func (c *Client) PollOperation(ctx context.Context, statusLocation string) (int, string, error) {
	status, _, body, err := c.do(ctx, http.MethodGet, statusLocation, nil)
	if err != nil {
		return 0, "", err
	}
	return status, string(body), nil
}

func (c *Client) list(ctx context.Context, url string) ([]Item, error) {
	status, _, body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", url, err)
	}
	return resp.Value, nil
}

func (c *Client) do(ctx context.Context, method, url string, reqBody io.Reader) (int, http.Header, []byte, error) {
	token, err := c.tokens.GetToken(ctx, c.audience)
	if err != nil {
		return 0, nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-ms-client-request-id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response %s: %w", url, err)
	}
	return resp.StatusCode, resp.Header, body, nil
}
