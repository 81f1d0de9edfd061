package gpt

import (
	"context"
	"fmt"
	"strings"

	"dearmind-backend/internal/ai"
	"dearmind-backend/internal/model"
)

const (
	listenerInstruction = `You are DearMind, a warm and supportive listener inside a mood journaling app.
Reply in the language the user writes in. Keep answers short (at most 4 sentences),
validate feelings before suggesting anything, never diagnose, and if the user mentions
self-harm encourage them to contact a local crisis line right away.`

	greetingPrompt = "Greet the user in one or two friendly sentences and ask how their day was."
)

// TokenCounter is satisfied by utils.Tokenizer.
type TokenCounter interface {
	CountTokens(s string) int
}

// Assistant answers chat turns with the GPT client when the AI service is not used.
type Assistant struct {
	factory ClientFactory
	counter TokenCounter
	budget  int
}

var _ ai.Assistant = Assistant{}

func NewAssistant(factory ClientFactory, counter TokenCounter, historyTokenBudget int) Assistant {
	return Assistant{
		factory: factory,
		counter: counter,
		budget:  historyTokenBudget,
	}
}

func (a Assistant) Chat(ctx context.Context, message string, history []ai.Message) (string, error) {
	client, err := a.factory.Client()
	if err != nil {
		return "", fmt.Errorf("gpt chat: %w", err)
	}

	client.Instruct(listenerInstruction)
	reply, err := client.Prompt(ctx, buildPrompt(TrimHistory(history, a.counter, a.budget), message))
	if err != nil {
		return "", fmt.Errorf("gpt chat: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (a Assistant) Init(ctx context.Context) (string, error) {
	client, err := a.factory.Client()
	if err != nil {
		return "", fmt.Errorf("gpt chat init: %w", err)
	}

	client.Instruct(listenerInstruction)
	reply, err := client.Prompt(ctx, greetingPrompt)
	if err != nil {
		return "", fmt.Errorf("gpt chat init: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// TrimHistory keeps the newest messages whose combined token count fits budget.
// history is ordered oldest first and so is the result.
func TrimHistory(history []ai.Message, counter TokenCounter, budget int) []ai.Message {
	if budget <= 0 || counter == nil {
		return history
	}

	used := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		n := counter.CountTokens(history[i].Content)
		if used+n > budget {
			break
		}
		used += n
		start = i
	}
	return history[start:]
}

func buildPrompt(history []ai.Message, message string) string {
	sb := strings.Builder{}
	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, m := range history {
			speaker := "User"
			if m.Role == model.RoleAssistant {
				speaker = "You"
			}
			sb.WriteString(fmt.Sprintf("%s: %s\n", speaker, m.Content))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("User: ")
	sb.WriteString(message)
	return sb.String()
}
