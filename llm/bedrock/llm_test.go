package bedrock

import (
	"context"
	"errors"
	"strings"
	"testing"

	"buyingagent"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type mockBedrockClient struct {
	output  *bedrockruntime.ConverseOutput
	err     error
	lastIn  *bedrockruntime.ConverseInput
}

func (m *mockBedrockClient) Converse(ctx context.Context, in *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	m.lastIn = in
	return m.output, m.err
}

func textOutput(stopReason types.StopReason, texts ...string) *bedrockruntime.ConverseOutput {
	blocks := make([]types.ContentBlock, 0, len(texts))
	for _, t := range texts {
		blocks = append(blocks, &types.ContentBlockMemberText{Value: t})
	}
	return &bedrockruntime.ConverseOutput{
		StopReason: stopReason,
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{Role: "assistant", Content: blocks},
		},
		Metrics: &types.ConverseMetrics{LatencyMs: aws.Int64(100)},
		Usage:   &types.TokenUsage{InputTokens: aws.Int32(10), OutputTokens: aws.Int32(20)},
	}
}

func TestNewLLMClient_Defaults(t *testing.T) {
	client := NewLLMClient(&mockBedrockClient{}, LLMOptions{})

	if client.opts.ModelID != defaultModelID {
		t.Errorf("ModelID = %v, want default", client.opts.ModelID)
	}
	if client.opts.MaxTokens != defaultMaxTokens {
		t.Errorf("MaxTokens = %v, want %v", client.opts.MaxTokens, defaultMaxTokens)
	}
	if client.opts.Temperature != defaultTemperature {
		t.Errorf("Temperature = %v, want %v", client.opts.Temperature, defaultTemperature)
	}
	if client.ModelID() != defaultModelID {
		t.Errorf("ModelID() = %v", client.ModelID())
	}
}

func TestLLMClient_Chat(t *testing.T) {
	tests := []struct {
		name        string
		output      *bedrockruntime.ConverseOutput
		err         error
		wantContent string
		wantErr     bool
		errContains string
	}{
		{
			name:        "end turn returns text",
			output:      textOutput("end_turn", "Reliability Score: 82/100"),
			wantContent: "Reliability Score: 82/100",
		},
		{
			name:        "multiple text blocks are joined",
			output:      textOutput("end_turn", "part one", "part two"),
			wantContent: "part one\npart two",
		},
		{
			name:        "max tokens is an error",
			output:      textOutput("max_tokens", "truncated"),
			wantErr:     true,
			errContains: "MaxTokens",
		},
		{
			name:        "safety block is an error",
			output:      textOutput("safety"),
			wantErr:     true,
			errContains: "safety",
		},
		{
			name:        "unknown stop reason falls back to text",
			output:      textOutput("", "fallback text"),
			wantContent: "fallback text",
		},
		{
			name:    "converse error propagates",
			err:     errors.New("throttled"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockBedrockClient{output: tt.output, err: tt.err}
			client := NewLLMClient(mock, LLMOptions{})

			resp, err := client.Chat(context.Background(), []buyingagent.ChatMessage{
				{Role: "system", Content: "You are a procurement analyst."},
				{Role: "user", Content: "Assess supplier reliability"},
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Chat() expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Chat() error = %v, want contains %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Chat() error = %v", err)
			}
			if resp.Content != tt.wantContent {
				t.Errorf("Chat() content = %q, want %q", resp.Content, tt.wantContent)
			}
		})
	}
}

func TestLLMClient_ChatRequestShape(t *testing.T) {
	mock := &mockBedrockClient{output: textOutput("end_turn", "ok")}
	client := NewLLMClient(mock, LLMOptions{ModelID: "custom-model", MaxTokens: 2048})

	_, err := client.Chat(context.Background(), []buyingagent.ChatMessage{
		{Role: "system", Content: "You are a procurement analyst."},
		{Role: "user", Content: "Assess supplier reliability"},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	in := mock.lastIn
	if aws.ToString(in.ModelId) != "custom-model" {
		t.Errorf("ModelId = %v", aws.ToString(in.ModelId))
	}
	if len(in.System) != 1 {
		t.Errorf("system blocks = %d, want 1", len(in.System))
	}
	if len(in.Messages) != 1 {
		t.Errorf("messages = %d, want 1 (system excluded)", len(in.Messages))
	}
	if aws.ToInt32(in.InferenceConfig.MaxTokens) != 2048 {
		t.Errorf("MaxTokens = %v", aws.ToInt32(in.InferenceConfig.MaxTokens))
	}
}
