package prompt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/optimizers"

	"buyingagent"
)

// minRecommendationLength is the bar a bootstrapped demonstration has to
// clear: anything shorter is not a usable order recommendation.
const minRecommendationLength = 10

// Example is one training demonstration for the advisor.
type Example struct {
	Inputs  map[string]any
	Outputs map[string]any
}

// ExampleDataset adapts a slice of examples to dspy-go's core.Dataset interface.
type ExampleDataset struct {
	examples []Example
	index    int
}

func NewExampleDataset(examples []Example) *ExampleDataset {
	return &ExampleDataset{examples: examples}
}

// Next returns the next example in the dataset
func (d *ExampleDataset) Next() (core.Example, bool) {
	if d.index >= len(d.examples) {
		return core.Example{}, false
	}
	ex := d.examples[d.index]
	d.index++
	return core.Example{
		Inputs:  toInterfaceMap(ex.Inputs),
		Outputs: toInterfaceMap(ex.Outputs),
	}, true
}

// Reset resets the dataset iterator
func (d *ExampleDataset) Reset() {
	d.index = 0
}

func toInterfaceMap(m map[string]any) map[string]interface{} {
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// AdvisorTrainingSet returns the synthetic demonstration used to bootstrap
// the purchase advisor.
func AdvisorTrainingSet() []Example {
	return []Example{
		{
			Inputs: map[string]any{
				"stockout_risk":      "SKU-205B: CRITICAL - Stock depleted, daily usage 5 units. SKU-101A: HIGH - 20 units left, 4 days of stock remaining.",
				"supplier_scores":    "Acme Industrial: Tier 1, 95.2 reliability, 7 day lead time. Globex Supply: Tier 2, 72.5 reliability, 10 day lead time.",
				"budget_constraints": "Monthly procurement budget: $75,000. Current committed spend: $12,400.",
			},
			Outputs: map[string]any{
				"recommended_order": "Order 160 units of SKU-205B from Acme Industrial at expedited rates (~$20,000) and 100 units of SKU-101A at standard rates (~$5,000).",
				"justification":     "SKU-205B is already out of stock so the expedite premium is cheaper than continued stockout. Acme Industrial's Tier 1 reliability and 7 day lead time makes it the safest route for both orders, and total spend stays under the remaining budget.",
			},
		},
	}
}

// RecommendationLengthMetric scores a prediction 1.0 when the recommended
// order is long enough to be actionable, 0.0 otherwise. Deliberately crude; a
// production metric would validate content, not length.
func RecommendationLengthMetric(expected, actual map[string]interface{}) float64 {
	rec, _ := actual["recommended_order"].(string)
	if len(rec) > minRecommendationLength {
		return 1.0
	}
	return 0.0
}

// CompileAdvisor bootstraps the purchase advisor with few-shot demonstrations
// and returns the optimized program.
func CompileAdvisor(ctx context.Context, client buyingagent.ChatClient) (core.Program, error) {
	adapter := NewChatClientAdapter(client)
	core.SetDefaultLLM(adapter)
	core.GlobalConfig.TeacherLLM = adapter

	advisor := NewPurchaseAdvisor()
	program := advisor.ToProgram()
	dataset := NewExampleDataset(AdvisorTrainingSet())

	accepted := func(expected, actual map[string]interface{}, ctx context.Context) bool {
		return RecommendationLengthMetric(expected, actual) > 0
	}

	slog.Info("OPTIMIZER: Compiling purchase advisor", "examples", len(AdvisorTrainingSet()), "model", client.ModelID())

	optimizer := optimizers.NewBootstrapFewShot(accepted, len(AdvisorTrainingSet()))
	optimized, err := optimizer.Compile(ctx, program, dataset, RecommendationLengthMetric)
	if err != nil {
		return core.Program{}, fmt.Errorf("bootstrap compile failed: %w", err)
	}

	slog.Info("OPTIMIZER: Compile complete")
	return optimized, nil
}
