// Package feed provides analysis snapshot sources for the notification
// service. The snapshots themselves are computed upstream; a feed only
// transports them.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/raykavin/signalert/core"
)

const defaultTimeout = 30 * time.Second

// HTTP pulls one snapshot per cycle from an endpoint serving the analysis
// tree as JSON
type HTTP struct {
	client *resty.Client
	url    string
}

// NewHTTP creates an HTTP feed for the given endpoint
func NewHTTP(url string) *HTTP {
	return &HTTP{
		client: resty.New().SetTimeout(defaultTimeout),
		url:    url,
	}
}

// Next implements core.AnalysisFeeder.
func (h *HTTP) Next(ctx context.Context) (core.AnalysisSnapshot, error) {
	resp, err := h.client.R().SetContext(ctx).Get(h.url)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode())
	}

	var snapshot core.AnalysisSnapshot
	if err := json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return nil, fmt.Errorf("feed: %w: %s", core.ErrMalformedAnalysis, err)
	}

	return snapshot, nil
}
