package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stratbench/stratbench/metrics"
)

// HTTPAdvisor posts run metrics to an external advisory endpoint and decodes
// its JSON reply into an Output.
type HTTPAdvisor struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPAdvisor creates an advisor for the given endpoint. An empty
// endpoint yields an advisor that reports itself unavailable.
func NewHTTPAdvisor(endpoint string) *HTTPAdvisor {
	return &HTTPAdvisor{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *HTTPAdvisor) Available() bool {
	return a != nil && a.Endpoint != ""
}

// request is the wire payload. Field names are part of the endpoint contract.
type request struct {
	Label         string          `json:"label"`
	Metrics       metrics.Metrics `json:"metrics"`
	MarketSummary string          `json:"market_summary"`
}

func (a *HTTPAdvisor) ScoreStrategy(ctx context.Context, label string, m metrics.Metrics, marketSummary string) (*Output, error) {
	if !a.Available() {
		return nil, fmt.Errorf("advisory endpoint not configured")
	}

	body, err := json.Marshal(request{Label: label, Metrics: m, MarketSummary: marketSummary})
	if err != nil {
		return nil, fmt.Errorf("encode advisory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build advisory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisory call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisory call: unexpected status %s", resp.Status)
	}

	var out Output
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode advisory reply: %w", err)
	}
	return &out, nil
}
