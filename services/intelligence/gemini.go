// File: services/intelligence/gemini.go
package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guestdesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = "Sei l'assistente degli ospiti di una piccola struttura ricettiva italiana. " +
	"Rispondi in modo breve e cordiale, nella lingua dell'ospite. " +
	"Non fornire mai codici di accesso, indirizzi precisi o dati personali: " +
	"per queste richieste rimanda al gestore."

// GeminiResponder answers unclassified free text with a short LLM reply.
type GeminiResponder struct {
	model *genai.GenerativeModel
}

func NewGeminiResponder(apiKey string) (*GeminiResponder, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	return &GeminiResponder{model: model}, nil
}

// Respond sends the rolling history plus the latest message and collects the
// text parts of the first candidate.
func (g *GeminiResponder) Respond(ctx context.Context, history []models.HistoryEntry, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	cs := g.model.StartChat()
	for _, h := range history {
		role := "user"
		if h.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(h.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
