package prompt

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"
)

// SupplierAssessment is the model's read on a supplier population.
type SupplierAssessment struct {
	ReliabilityScore string
	RiskFactors      string
	Reasoning        string
}

// ItemForecast is the model's stockout read for one SKU.
type ItemForecast struct {
	StockoutProbability string
	DaysUntilStockout   string
}

// PurchaseAdvice is the model's order recommendation.
type PurchaseAdvice struct {
	RecommendedOrder string
	Justification    string
	Reasoning        string
}

// NegotiationPlan is the model's proposed negotiation approach.
type NegotiationPlan struct {
	Strategy        string
	ExpectedOutcome string
}

// SupplierEvaluator runs the supplier evaluation task with chain-of-thought
// so the reasoning behind the score is preserved.
type SupplierEvaluator struct {
	cot *modules.ChainOfThought
}

func NewSupplierEvaluator() *SupplierEvaluator {
	return &SupplierEvaluator{cot: modules.NewChainOfThought(SupplierEvaluation.Signature)}
}

func (e *SupplierEvaluator) Evaluate(ctx context.Context, orderHistory, supplierInfo string) (SupplierAssessment, error) {
	outputs, err := e.cot.Process(ctx, map[string]any{
		"order_history": orderHistory,
		"supplier_info": supplierInfo,
	})
	if err != nil {
		return SupplierAssessment{}, fmt.Errorf("supplier evaluation failed: %w", err)
	}
	return SupplierAssessment{
		ReliabilityScore: stringOutput(outputs, "reliability_score"),
		RiskFactors:      stringOutput(outputs, "risk_factors"),
		Reasoning:        reasoningOutput(outputs),
	}, nil
}

// StockoutForecaster runs the stockout prediction task as a plain prediction,
// once per item.
type StockoutForecaster struct {
	predict *modules.Predict
}

func NewStockoutForecaster() *StockoutForecaster {
	return &StockoutForecaster{predict: modules.NewPredict(StockoutPrediction.Signature)}
}

func (f *StockoutForecaster) Forecast(ctx context.Context, currentStock, consumptionPattern, leadTime string) (ItemForecast, error) {
	outputs, err := f.predict.Process(ctx, map[string]any{
		"current_stock":       currentStock,
		"consumption_pattern": consumptionPattern,
		"lead_time":           leadTime,
	})
	if err != nil {
		return ItemForecast{}, fmt.Errorf("stockout forecast failed: %w", err)
	}
	return ItemForecast{
		StockoutProbability: stringOutput(outputs, "stockout_probability"),
		DaysUntilStockout:   stringOutput(outputs, "days_until_stockout"),
	}, nil
}

// PurchaseAdvisor runs the purchase recommendation task with chain-of-thought.
type PurchaseAdvisor struct {
	cot *modules.ChainOfThought
}

func NewPurchaseAdvisor() *PurchaseAdvisor {
	return &PurchaseAdvisor{cot: modules.NewChainOfThought(PurchaseRecommendation.Signature)}
}

func (a *PurchaseAdvisor) Advise(ctx context.Context, stockoutRisk, supplierScores, budgetConstraints string) (PurchaseAdvice, error) {
	outputs, err := a.cot.Process(ctx, map[string]any{
		"stockout_risk":      stockoutRisk,
		"supplier_scores":    supplierScores,
		"budget_constraints": budgetConstraints,
	})
	if err != nil {
		return PurchaseAdvice{}, fmt.Errorf("purchase recommendation failed: %w", err)
	}
	return PurchaseAdvice{
		RecommendedOrder: stringOutput(outputs, "recommended_order"),
		Justification:    stringOutput(outputs, "justification"),
		Reasoning:        reasoningOutput(outputs),
	}, nil
}

// ToProgram wraps the advisor in a core.Program for use with dspy-go optimizers.
func (a *PurchaseAdvisor) ToProgram() core.Program {
	mods := map[string]core.Module{
		PurchaseRecommendation.Name: a.cot,
	}

	forward := func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		return a.cot.Process(ctx, inputs)
	}

	return core.NewProgram(mods, forward)
}

// NegotiationPlanner runs the negotiation strategy task with chain-of-thought.
type NegotiationPlanner struct {
	cot *modules.ChainOfThought
}

func NewNegotiationPlanner() *NegotiationPlanner {
	return &NegotiationPlanner{cot: modules.NewChainOfThought(NegotiationStrategy.Signature)}
}

func (p *NegotiationPlanner) Plan(ctx context.Context, supplierProfile, orderRequirements, marketConditions string) (NegotiationPlan, error) {
	outputs, err := p.cot.Process(ctx, map[string]any{
		"supplier_profile":   supplierProfile,
		"order_requirements": orderRequirements,
		"market_conditions":  marketConditions,
	})
	if err != nil {
		return NegotiationPlan{}, fmt.Errorf("negotiation planning failed: %w", err)
	}
	return NegotiationPlan{
		Strategy:        stringOutput(outputs, "strategy"),
		ExpectedOutcome: stringOutput(outputs, "expected_outcome"),
	}, nil
}

func stringOutput(outputs map[string]any, key string) string {
	if v, ok := outputs[key].(string); ok {
		return v
	}
	if v, ok := outputs[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// reasoningOutput returns the chain-of-thought rationale. The field name
// depends on the module implementation, so both spellings are checked.
func reasoningOutput(outputs map[string]any) string {
	for _, key := range []string{"rationale", "reasoning"} {
		if v := stringOutput(outputs, key); v != "" {
			return v
		}
	}
	return ""
}
