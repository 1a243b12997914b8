package coordinator

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"buyingagent"
)

// dollarAmount matches figures like $1,200 or $ 20000.50 in free text.
var dollarAmount = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

// costKeys are the JSON field names treated as cost estimates when the model
// returns structured output.
var costKeys = []string{"estimated_cost", "total_cost", "cost", "total", "amount"}

// CheckBudget extracts the estimated spend from the recommended order text and
// compares it to the budget. When nothing parseable is found the check reports
// EstimateAvailable=false instead of silently passing.
func CheckBudget(recommendation string, budget float64) buyingagent.BudgetCheck {
	check := buyingagent.BudgetCheck{Budget: budget}

	estimate, ok := extractEstimate(recommendation)
	if !ok {
		slog.Warn("COORDINATOR: No dollar estimate found in recommendation; budget compliance unknown",
			"recommendation_len", len(recommendation))
		return check
	}

	check.EstimatedCost = estimate
	check.EstimateAvailable = true
	check.WithinBudget = estimate <= budget
	check.Headroom = budget - estimate
	return check
}

// extractEstimate returns the estimated total spend mentioned in the text.
// Structured JSON output is tried first; otherwise the largest dollar figure
// in the prose is taken as the total, since itemized lines never exceed it.
func extractEstimate(text string) (float64, bool) {
	if v, ok := estimateFromJSON(text); ok {
		return v, true
	}

	matches := dollarAmount.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	max := 0.0
	found := false
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		found = true
		if v > max {
			max = v
		}
	}
	return max, found
}

// estimateFromJSON repairs and parses an embedded JSON object, then looks for
// a cost field in it.
func estimateFromJSON(text string) (float64, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return 0, false
	}

	// Truncated model output may never close the object; repair handles that.
	segment := text[start:]
	if end := strings.LastIndex(text, "}"); end > start {
		segment = text[start : end+1]
	}

	repaired, err := jsonrepair.RepairJSON(segment)
	if err != nil {
		slog.Warn("COORDINATOR: Failed to repair embedded JSON in recommendation", "error", err)
		return 0, false
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return 0, false
	}

	return costFromValue(payload)
}

// costFromValue walks a decoded JSON value for the first cost-named number.
func costFromValue(v any) (float64, bool) {
	switch val := v.(type) {
	case map[string]any:
		for _, key := range costKeys {
			if raw, ok := val[key]; ok {
				if n, ok := numberFrom(raw); ok {
					return n, true
				}
			}
		}
		for _, nested := range val {
			if n, ok := costFromValue(nested); ok {
				return n, true
			}
		}
	case []any:
		for _, item := range val {
			if n, ok := costFromValue(item); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func numberFrom(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(n, "$"), ",", ""))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
