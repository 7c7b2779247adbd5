package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
)

// GeminiClientSelector walks an ordered list of Gemini clients. The first
// client is always tried first; failover is strictly sequential with no
// backoff or parallel racing, and the error surfaced on exhaustion is the
// one from the last attempt.
type GeminiClientSelector struct {
	clients []GeminiClient
}

func NewGeminiClientSelector(clients []GeminiClient) *GeminiClientSelector {
	return &GeminiClientSelector{clients: clients}
}

// GetClientCount returns total number of clients
func (s *GeminiClientSelector) GetClientCount() int {
	return len(s.clients)
}

// TryAllClients attempts the operation with each client in order until one
// succeeds.
func (s *GeminiClientSelector) TryAllClients(operation func(*GeminiClient, int) error) error {
	clientCount := s.GetClientCount()
	if clientCount == 0 {
		return fmt.Errorf("no Gemini clients available")
	}

	var lastErr error
	errorsCollected := make([]string, 0, clientCount)

	for attempt := 0; attempt < clientCount; attempt++ {
		client := &s.clients[attempt]

		slog.Info("Attempting Gemini API request",
			"client_index", attempt,
			"attempt", attempt+1,
			"total_clients", clientCount)

		err := operation(client, attempt)
		if err == nil {
			slog.Info("Gemini API request succeeded",
				"client_index", attempt,
				"attempt", attempt+1)
			return nil
		}

		lastErr = err
		errorsCollected = append(errorsCollected, fmt.Sprintf("client[%d]: %v", attempt, err))

		slog.Warn("Gemini API request failed, trying next client",
			"client_index", attempt,
			"attempt", attempt+1,
			"error", err)
	}

	slog.Error("All Gemini clients exhausted",
		"total_attempts", clientCount,
		"errors", errorsCollected)

	return fmt.Errorf("all %d Gemini clients failed, last error: %w", clientCount, lastErr)
}

// GenerateTextWithRetry runs a plain-text generation with failover.
func GenerateTextWithRetry(ctx context.Context, prompt string, selector *GeminiClientSelector) (string, error) {
	var result string

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.GenerateText(ctx, prompt)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}

// GenerateStructuredWithRetry runs a schema-constrained generation with
// failover and unmarshals the result into out.
func GenerateStructuredWithRetry(ctx context.Context, prompt string, schema *genai.Schema, selector *GeminiClientSelector, out any) error {
	var raw json.RawMessage

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.GenerateStructured(ctx, prompt, schema)
		if err != nil {
			return err
		}
		raw = resp
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal AI response to JSON: %w. \nRaw response was: %s", err, string(raw))
	}
	return nil
}

// GenerateStructuredWithImageAndRetry is the image variant used by disease
// detection.
func GenerateStructuredWithImageAndRetry(ctx context.Context, prompt, imageBase64 string, schema *genai.Schema, selector *GeminiClientSelector, out any) error {
	var raw json.RawMessage

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.GenerateStructuredWithImage(ctx, prompt, imageBase64, schema)
		if err != nil {
			return err
		}
		raw = resp
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal AI response to JSON: %w. \nRaw response was: %s", err, string(raw))
	}
	return nil
}
