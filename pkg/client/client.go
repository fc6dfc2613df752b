// Package client keeps a live, paginated view of the game catalog in sync
// with the server as the user edits filters, search text, sort order, and
// page selection.
package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/gamedexapp/gamedex/pkg/pagination"
	"github.com/gamedexapp/gamedex/pkg/query"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Fetcher executes a normalized query and returns one result envelope. A
// View drives a Fetcher across the network boundary; anything satisfying
// this contract is substitutable.
type Fetcher interface {
	Fetch(ctx context.Context, spec query.Spec) (*pagination.Envelope[*models.Game], error)
}

// APIClient is the HTTP Fetcher for a gamedex server.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *APIClient) Fetch(ctx context.Context, spec query.Spec) (*pagination.Envelope[*models.Game], error) {
	url := c.baseURL + "/games?" + spec.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("games request failed with status %d", resp.StatusCode)
	}

	envelope := &pagination.Envelope[*models.Game]{}
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		return nil, errors.WithStack(err)
	}

	return envelope, nil
}
