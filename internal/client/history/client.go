package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"perpfolio/internal/models"
)

// Client talks to the upstream trading-history service. It returns one
// completed snapshot per call; retries and caching are the caller's
// concern.
type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("history API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// GetTradeEvents fetches the full trade-event history for one account.
func (c *Client) GetTradeEvents(ctx context.Context, address string) ([]models.TradeEvent, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	query := url.Values{}
	query.Set("address", address)
	body, err := c.doRequest(ctx, "/v1/trades", query)
	if err != nil {
		return nil, err
	}
	return ParseTradeEvents(address, body)
}

// ParseTradeEvents decodes the upstream array. A non-array payload is the
// only fatal shape error; malformed fields inside a record degrade to null
// through the tolerant field decoder.
func ParseTradeEvents(address string, body []byte) ([]models.TradeEvent, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil {
		return nil, fmt.Errorf("expected trade-event array: %w", err)
	}

	events := make([]models.TradeEvent, 0, len(rawItems))
	for _, item := range rawItems {
		var raw rawTradeEvent
		if err := json.Unmarshal(item, &raw); err != nil || raw.TxID == "" {
			// Non-object rows and rows without a dedup key carry nothing
			// usable; skip the row.
			continue
		}
		events = append(events, raw.toModel(address, item))
	}
	return events, nil
}
