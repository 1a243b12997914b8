package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"buyingagent"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// Summary renders an analysis report as a short channel update.
func Summary(report *buyingagent.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Procurement analysis %s complete.\n", report.RunID)
	fmt.Fprintf(&b, "Supplier reliability: %s\n", report.Supplier.ReliabilityScore)
	fmt.Fprintf(&b, "Items analyzed: %d", len(report.Stockout.Items))
	if len(report.Stockout.CriticalSKUs) > 0 {
		fmt.Fprintf(&b, " (critical: %s)", strings.Join(report.Stockout.CriticalSKUs, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Recommendation: %s\n", report.Advice.RecommendedOrder)

	switch {
	case !report.Budget.EstimateAvailable:
		b.WriteString("Budget check: estimate unavailable, review manually.")
	case report.Budget.WithinBudget:
		fmt.Fprintf(&b, "Budget check: $%.0f of $%.0f, within budget.", report.Budget.EstimatedCost, report.Budget.Budget)
	default:
		fmt.Fprintf(&b, "Budget check: $%.0f EXCEEDS the $%.0f budget.", report.Budget.EstimatedCost, report.Budget.Budget)
	}

	return b.String()
}
