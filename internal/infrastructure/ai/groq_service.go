package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/ports"
)

var _ ports.InvoiceExtractor = (*GroqService)(nil)

// GroqDefaultBaseURL endpoint compatible con OpenAI de Groq.
const GroqDefaultBaseURL = "https://api.groq.com/openai/v1"

// GroqService adaptador para Groq usando el cliente de OpenAI con otra base URL.
type GroqService struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewGroqService construye el adaptador. baseURL vacío usa el endpoint público de Groq.
func NewGroqService(apiKey, model, baseURL string) *GroqService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = GroqDefaultBaseURL
	}
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		hasKey: apiKey != "",
	}
}

// Name implementa ports.InvoiceExtractor.
func (s *GroqService) Name() string { return ProviderGroq }

// ExtractInvoice envía el prompt como mensaje de usuario y decodifica la primera opción.
func (s *GroqService) ExtractInvoice(ctx context.Context, text string) (*dto.ExtractedInvoice, error) {
	if !s.hasKey {
		return nil, fmt.Errorf("AI: GROQ_API_KEY no configurado")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("AI: Groq: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("AI: Groq devolvió respuesta vacía")
	}
	return parseExtracted(resp.Choices[0].Message.Content)
}
