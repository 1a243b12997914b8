package prompt

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"

	"buyingagent"
)

// ChatClientAdapter adapts a ChatClient to dspy-go's LLM interface so the
// prompt modules can run against the router or Bedrock clients.
type ChatClientAdapter struct {
	client buyingagent.ChatClient
}

func NewChatClientAdapter(client buyingagent.ChatClient) *ChatClientAdapter {
	return &ChatClientAdapter{client: client}
}

// Generate implements the dspy-go LLM interface
func (a *ChatClientAdapter) Generate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	resp, err := a.client.Chat(ctx, []buyingagent.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("chat client failed: %w", err)
	}

	return &core.LLMResponse{
		Content: resp.Content,
	}, nil
}

// GenerateWithJSON is not used by the prediction and chain-of-thought modules,
// which parse structured fields out of plain completions.
func (a *ChatClientAdapter) GenerateWithJSON(ctx context.Context, prompt string, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithJSON not implemented: the analysis modules use plain completions")
}

// GenerateWithFunctions is not used; tool dispatch happens in the coordinator,
// not inside the prompt modules.
func (a *ChatClientAdapter) GenerateWithFunctions(ctx context.Context, prompt string, functions []map[string]interface{}, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithFunctions not implemented: tool dispatch happens in the coordinator")
}

// CreateEmbedding is not used; no retrieval or similarity scoring runs here.
func (a *ChatClientAdapter) CreateEmbedding(ctx context.Context, input string, opts ...core.EmbeddingOption) (*core.EmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbedding not implemented")
}

// CreateEmbeddings is not used; no retrieval or similarity scoring runs here.
func (a *ChatClientAdapter) CreateEmbeddings(ctx context.Context, inputs []string, opts ...core.EmbeddingOption) (*core.BatchEmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbeddings not implemented")
}

// StreamGenerate is not used; analysis runs in batch mode.
func (a *ChatClientAdapter) StreamGenerate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerate not implemented: analysis runs in batch mode")
}

// GenerateWithContent is not used; all inputs are text.
func (a *ChatClientAdapter) GenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	return nil, fmt.Errorf("GenerateWithContent not implemented: all inputs are text")
}

// StreamGenerateWithContent is not used; all inputs are text and analysis runs
// in batch mode.
func (a *ChatClientAdapter) StreamGenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerateWithContent not implemented")
}

// ProviderName returns the provider name
func (a *ChatClientAdapter) ProviderName() string {
	return "buyingagent"
}

// ModelID returns the model identifier
func (a *ChatClientAdapter) ModelID() string {
	return a.client.ModelID()
}

// Capabilities returns the capabilities of this LLM
func (a *ChatClientAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapabilityChat, core.CapabilityCompletion}
}

// Configure registers the adapter as the default LLM for all prompt modules.
func Configure(client buyingagent.ChatClient) {
	adapter := NewChatClientAdapter(client)
	core.SetDefaultLLM(adapter)
}
