// Package assist answers free-text questions with a hosted language
// model, grounded on the embedded knowledge base. Off-topic questions are
// redirected and questions without a retrievable fact get a fixed
// apology, so the model never answers unanchored.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// Apology is returned when the knowledge base has no relevant fact.
	Apology = "К сожалению, у меня нет информации по этому вопросу. Попробуйте переформулировать или выберите раздел в меню."
	// Redirect is returned for questions outside the bot's subject area.
	Redirect = "Я отвечаю только на вопросы о героях Великой Отечественной войны и истории родного края. Задайте вопрос по теме!"

	systemPrompt = "Ты помощник образовательного бота о героях Великой Отечественной войны. " +
		"Отвечай кратко и только на основе приведенных фактов. " +
		"Если фактов недостаточно, честно скажи об этом."
)

// Assistant bridges user questions to an OpenAI-style chat completions
// endpoint. With no endpoint configured it degrades to quoting the
// retrieved facts directly.
type Assistant struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	kb      *Knowledge
}

func NewAssistant(baseURL, apiKey, model string, kb *Knowledge) *Assistant {
	return &Assistant{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		kb:      kb,
	}
}

// Answer resolves one free-text question. It never returns an error to
// the dialogue layer: model failures degrade to the apology string.
func (a *Assistant) Answer(ctx context.Context, question string) string {
	if !a.kb.OnTopic(question) {
		return Redirect
	}
	facts := a.kb.Retrieve(question)
	if len(facts) == 0 {
		return Apology
	}
	if a.baseURL == "" {
		// No model configured; the retrieved facts are the answer.
		return facts[0].Text
	}
	answer, err := a.complete(ctx, question, facts)
	if err != nil {
		log.Printf("assistant model call failed: %v", err)
		return Apology
	}
	return answer
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *Assistant) complete(ctx context.Context, question string, facts []Fact) (string, error) {
	grounding := &strings.Builder{}
	grounding.WriteString(systemPrompt)
	grounding.WriteString("\n\nФакты:\n")
	for _, fact := range facts {
		grounding.WriteString("- ")
		grounding.WriteString(fact.Text)
		grounding.WriteString("\n")
	}

	payload, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: grounding.String()},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model endpoint returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("model returned no content")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
