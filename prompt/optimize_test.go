package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buyingagent"
)

type mockChatClient struct {
	content string
	err     error
}

func (m *mockChatClient) Chat(ctx context.Context, messages []buyingagent.ChatMessage) (buyingagent.ChatResponse, error) {
	if m.err != nil {
		return buyingagent.ChatResponse{}, m.err
	}
	return buyingagent.ChatResponse{Content: m.content}, nil
}

func (m *mockChatClient) ModelID() string { return "mock-model" }

func TestExampleDataset(t *testing.T) {
	dataset := NewExampleDataset(AdvisorTrainingSet())

	ex, ok := dataset.Next()
	require.True(t, ok)
	assert.Contains(t, ex.Inputs, "stockout_risk")
	assert.Contains(t, ex.Inputs, "supplier_scores")
	assert.Contains(t, ex.Inputs, "budget_constraints")
	assert.Contains(t, ex.Outputs, "recommended_order")
	assert.Contains(t, ex.Outputs, "justification")

	_, ok = dataset.Next()
	assert.False(t, ok, "training set holds a single example")

	dataset.Reset()
	_, ok = dataset.Next()
	assert.True(t, ok, "reset rewinds the iterator")
}

func TestRecommendationLengthMetric(t *testing.T) {
	tests := []struct {
		name   string
		actual map[string]interface{}
		want   float64
	}{
		{
			name:   "actionable recommendation",
			actual: map[string]interface{}{"recommended_order": "Order 160 units of SKU-205B from Acme Industrial"},
			want:   1.0,
		},
		{
			name:   "too short to act on",
			actual: map[string]interface{}{"recommended_order": "order now"},
			want:   0.0,
		},
		{
			name:   "missing field",
			actual: map[string]interface{}{},
			want:   0.0,
		},
		{
			name:   "wrong type",
			actual: map[string]interface{}{"recommended_order": 42},
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendationLengthMetric(nil, tt.actual))
		})
	}
}

func TestChatClientAdapter_Generate(t *testing.T) {
	adapter := NewChatClientAdapter(&mockChatClient{content: "Reliability Score: 85/100"})

	resp, err := adapter.Generate(context.Background(), "evaluate suppliers")
	require.NoError(t, err)
	assert.Equal(t, "Reliability Score: 85/100", resp.Content)

	assert.Equal(t, "buyingagent", adapter.ProviderName())
	assert.Equal(t, "mock-model", adapter.ModelID())
	assert.Len(t, adapter.Capabilities(), 2)
}

func TestChatClientAdapter_UnimplementedPaths(t *testing.T) {
	adapter := NewChatClientAdapter(&mockChatClient{})
	ctx := context.Background()

	_, err := adapter.GenerateWithJSON(ctx, "prompt")
	assert.Error(t, err)

	_, err = adapter.GenerateWithFunctions(ctx, "prompt", nil)
	assert.Error(t, err)

	_, err = adapter.CreateEmbedding(ctx, "input")
	assert.Error(t, err)

	_, err = adapter.StreamGenerate(ctx, "prompt")
	assert.Error(t, err)
}
