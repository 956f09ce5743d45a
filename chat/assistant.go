// Package chat wraps the Gemini text-generation service behind the
// storefront's in-app assistant. One completion per question, no retries; the
// controller turns any failure into a generic in-chat message.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const systemInstruction = `You are an expert cybersecurity assistant on CyberTech, a learning platform for cybersecurity courses. You provide very brief, accurate, and summarized answers on topics related to cybersecurity learning, including relevant programming and computer science aspects when they relate to cybersecurity. If the user's question is not directly related to cybersecurity learning, respond with: "I only answer questions related to cybersecurity learning." Always keep your responses concise and focused.`

const fallbackReply = "Sorry, I couldn't understand your question."

// Message is one transcript entry. Sender is "user" or "bot".
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type Assistant struct {
	client *genai.Client
	model  string
}

// NewAssistant builds the Gemini-backed assistant.
func NewAssistant(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, errors.New("chat: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("chat: create client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

// Reply sends the running transcript plus the new question and returns a
// single completion.
func (a *Assistant) Reply(ctx context.Context, history []Message, question string) (string, error) {
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, msg := range history {
		speaker := "Assistant"
		if msg.Sender == "user" {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Text)
	}
	fmt.Fprintf(&b, "\nUser: %s\n\nAssistant:", question)

	contents := []*genai.Content{
		genai.NewContentFromText(b.String(), genai.RoleUser),
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("chat: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return fallbackReply, nil
	}
	return text, nil
}
