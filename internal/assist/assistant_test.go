package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnswerRedirectsOffTopic(t *testing.T) {
	assistant := NewAssistant("", "", "", NewKnowledge(DefaultFacts))
	if got := assistant.Answer(context.Background(), "Какая сегодня погода?"); got != Redirect {
		t.Fatalf("expected redirect, got %q", got)
	}
}

func TestAnswerApologizesWithoutFacts(t *testing.T) {
	assistant := NewAssistant("", "", "", NewKnowledge(nil))
	if got := assistant.Answer(context.Background(), "Расскажи про героев войны"); got != Apology {
		t.Fatalf("expected apology, got %q", got)
	}
}

func TestAnswerQuotesFactsWithoutModel(t *testing.T) {
	assistant := NewAssistant("", "", "", NewKnowledge(DefaultFacts))
	got := assistant.Answer(context.Background(), "Кто такой Виктор Усов?")
	if !strings.Contains(got, "Усов") {
		t.Fatalf("expected fact about Усов, got %q", got)
	}
}

func TestAnswerCallsModel(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: " Усов командовал заставой. "}},
			},
		})
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL, "test-key", "test-model", NewKnowledge(DefaultFacts))
	got := assistant.Answer(context.Background(), "Расскажи про Усова")
	if got != "Усов командовал заставой." {
		t.Fatalf("expected trimmed model answer, got %q", got)
	}
	if captured.Model != "test-model" || len(captured.Messages) != 2 {
		t.Fatalf("unexpected request payload: %+v", captured)
	}
	if !strings.Contains(captured.Messages[0].Content, "Виктор Усов") {
		t.Fatalf("expected grounding facts in system message")
	}
}

func TestAnswerDegradesOnModelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL, "", "test-model", NewKnowledge(DefaultFacts))
	if got := assistant.Answer(context.Background(), "Расскажи про Усова"); got != Apology {
		t.Fatalf("expected apology on model failure, got %q", got)
	}
}

func TestRetrieveMatchesKeywords(t *testing.T) {
	kb := NewKnowledge(DefaultFacts)
	facts := kb.Retrieve("Когда освободили Гродно?")
	if len(facts) == 0 {
		t.Fatalf("expected facts about Гродно")
	}
	if !strings.Contains(facts[0].Text, "1944") {
		t.Fatalf("unexpected fact: %q", facts[0].Text)
	}
}
