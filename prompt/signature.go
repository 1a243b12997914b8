package prompt

import (
	"github.com/XiaoConstantine/dspy-go/pkg/core"
)

// Signature wraps dspy-go's signature with a stable name used when the module
// is registered in a program.
type Signature struct {
	core.Signature
	Name string
}

func newSignature(name, instruction string, inputs, outputs []string) Signature {
	ins := make([]core.InputField, len(inputs))
	for i, f := range inputs {
		ins[i] = core.InputField{Field: core.NewField(f)}
	}

	outs := make([]core.OutputField, len(outputs))
	for i, f := range outputs {
		outs[i] = core.OutputField{Field: core.NewField(f)}
	}

	return Signature{
		Signature: core.NewSignature(ins, outs).WithInstruction(instruction),
		Name:      name,
	}
}

// Declarative task definitions for the analysis pipeline. Each names its
// inputs and outputs; prompt text is generated from the structure rather than
// written by hand.
var (
	SupplierEvaluation = newSignature(
		"supplier_evaluation",
		"Evaluate supplier reliability based on historical performance. Cite specific delivery metrics in the risk factors.",
		[]string{"order_history", "supplier_info"},
		[]string{"reliability_score", "risk_factors"},
	)

	StockoutPrediction = newSignature(
		"stockout_prediction",
		"Predict the probability that this item stocks out and estimate the days remaining, given its stock position, consumption pattern, and supplier lead time.",
		[]string{"current_stock", "consumption_pattern", "lead_time"},
		[]string{"stockout_probability", "days_until_stockout"},
	)

	PurchaseRecommendation = newSignature(
		"purchase_recommendation",
		"Recommend purchase orders that prevent stockouts while staying within budget. Include estimated dollar amounts in the recommended order.",
		[]string{"stockout_risk", "supplier_scores", "budget_constraints"},
		[]string{"recommended_order", "justification"},
	)

	NegotiationStrategy = newSignature(
		"negotiation_strategy",
		"Propose a negotiation approach for the upcoming orders given the supplier profile, order requirements, and market conditions.",
		[]string{"supplier_profile", "order_requirements", "market_conditions"},
		[]string{"strategy", "expected_outcome"},
	)
)
