package buyingagent

import (
	"context"
	"net/http"
	"time"

	"buyingagent/procure"
	"buyingagent/tools"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
}

type Coordinator interface {
	Run(ctx context.Context, task string) (*AnalysisReport, error)
}

// ChatMessage is one turn of a chat exchange with a model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the model's reply to a chat exchange.
type ChatResponse struct {
	Content string `json:"content"`
}

// ChatClient is a text-in, text-out model client. Both the OpenAI-compatible
// router client and the Bedrock Converse client satisfy it.
type ChatClient interface {
	Chat(ctx context.Context, messages []ChatMessage) (ChatResponse, error)
	ModelID() string
}

// AnalysisReport is the final result assembled from one full analysis run.
type AnalysisReport struct {
	RunID       string             `json:"run_id"`
	Timestamp   time.Time          `json:"timestamp"`
	ModelID     string             `json:"model_id"`
	Task        string             `json:"task"`
	Supplier    SupplierAssessment `json:"supplier_analysis"`
	Stockout    StockoutAssessment `json:"stockout_analysis"`
	Advice      PurchaseAdvice     `json:"recommendation"`
	Negotiation *NegotiationPlan   `json:"negotiation,omitempty"`
	Budget      BudgetCheck        `json:"budget_check"`
	Dashboard   procure.Dashboard  `json:"dashboard"`
}

// SupplierAssessment is the model's reliability read over the aggregated order history.
type SupplierAssessment struct {
	ReliabilityScore string `json:"reliability_score"`
	RiskFactors      string `json:"risk_factors"`
	Reasoning        string `json:"reasoning,omitempty"`
}

// StockoutAssessment collects per-item forecasts plus the critical SKU list.
type StockoutAssessment struct {
	Items        []ItemForecast `json:"items"`
	CriticalSKUs []string       `json:"critical_skus"`
	Summary      string         `json:"summary"`
}

// ItemForecast is the model's stockout read for a single SKU.
type ItemForecast struct {
	SKUID               string `json:"sku_id"`
	CurrentStock        int    `json:"current_stock"`
	ReorderLevel        int    `json:"reorder_level"`
	StockoutProbability string `json:"stockout_probability"`
	DaysUntilStockout   string `json:"days_until_stockout"`
}

// PurchaseAdvice is the model's order recommendation with its justification.
type PurchaseAdvice struct {
	RecommendedOrder string `json:"recommended_order"`
	Justification    string `json:"justification"`
	Reasoning        string `json:"reasoning,omitempty"`
}

// NegotiationPlan is the strategy text produced when negotiation is required.
type NegotiationPlan struct {
	Strategy        string `json:"strategy"`
	ExpectedOutcome string `json:"expected_outcome"`
}

// BudgetCheck records the outcome of parsing dollar amounts out of the
// recommended order text and comparing them to the configured budget.
// EstimateAvailable is false when no amount could be extracted; that state is
// reported, never silently dropped.
type BudgetCheck struct {
	Budget            float64 `json:"budget"`
	EstimatedCost     float64 `json:"estimated_cost"`
	EstimateAvailable bool    `json:"estimate_available"`
	WithinBudget      bool    `json:"within_budget"`
	Headroom          float64 `json:"headroom"`
}

// IsValid checks if the AnalysisReport meets basic completeness requirements.
func (r *AnalysisReport) IsValid() bool {
	if r.Advice.RecommendedOrder == "" || r.Advice.Justification == "" {
		return false
	}

	if len(r.Stockout.Items) == 0 {
		return false
	}
	for _, item := range r.Stockout.Items {
		if item.SKUID == "" {
			return false
		}
	}

	if r.Supplier.ReliabilityScore == "" {
		return false
	}

	return true
}
