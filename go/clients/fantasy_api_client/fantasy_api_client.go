package fantasy_api_client

import (
	"time"

	"github.com/mcdev12/gridiron/go/clients"
)

// FantasyApiClient talks to the fantasy football REST backend
type FantasyApiClient struct {
	*clients.BaseClient
}

// NewFantasyApiClient creates a client for baseURL. Requests carry the bearer
// token returned by tokens, when non-nil.
func NewFantasyApiClient(baseURL string, tokens clients.TokenSource, timeout time.Duration) *FantasyApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &FantasyApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.SetTokenSource(tokens)

	return client
}
