package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/KevinKolb/CableGuide/internal/shared/errors"
	"github.com/samber/oops"
)

// Client talks to the third-party TV listings API.
// Two calls per refresh: lineup by ZIP code, then listings for that lineup.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Lineup is the set of channels available for a ZIP code
type Lineup struct {
	ID       string          `json:"lineupId"`
	Name     string          `json:"name"`
	Channels []LineupChannel `json:"channels"`
}

// LineupChannel is one channel in a lineup
type LineupChannel struct {
	Number   string `json:"number"`
	CallSign string `json:"callSign"`
	Name     string `json:"name"`
}

// ChannelListings holds the scheduled airings for one channel
type ChannelListings struct {
	Channel string   `json:"channel"`
	Airings []Airing `json:"airings"`
}

// Airing is one scheduled program
type Airing struct {
	StartTime   time.Time `json:"startTime"`
	Duration    int       `json:"duration"` // minutes
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type listingsResponse struct {
	Listings []ChannelListings `json:"listings"`
}

// New creates a listings API client
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Lineup fetches the channel lineup for a ZIP code
func (c *Client) Lineup(ctx context.Context, zipCode string) (*Lineup, error) {
	endpoint := fmt.Sprintf("%s/lineups?postalCode=%s", c.baseURL, url.QueryEscape(zipCode))

	var lineup Lineup
	if err := c.get(ctx, endpoint, &lineup); err != nil {
		return nil, oops.With("zip_code", zipCode, "context", "fetching lineup").Wrap(err)
	}

	return &lineup, nil
}

// Listings fetches the scheduled airings for every channel in a lineup
// over the given window of hours
func (c *Client) Listings(ctx context.Context, lineupID string, hours int) ([]ChannelListings, error) {
	endpoint := fmt.Sprintf("%s/lineups/%s/listings?hours=%d", c.baseURL, url.PathEscape(lineupID), hours)

	var resp listingsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, oops.With("lineup_id", lineupID, "context", "fetching listings").Wrap(err)
	}

	return resp.Listings, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return oops.With("endpoint", endpoint).Wrap(err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.With("endpoint", endpoint, "context", "network failure").Wrap(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.ErrAuthFailed
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return oops.With("status", resp.StatusCode).Wrap(errors.ErrBadResponse)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return oops.With("endpoint", endpoint).Wrap(errors.ErrBadResponse)
	}

	return nil
}
