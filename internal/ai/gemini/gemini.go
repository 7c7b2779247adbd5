package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	Client    *genai.Client
	ModelName string
}

func NewGenAIClient(apiKey, modelName string) (*GeminiClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	return &GeminiClient{
		Client:    client,
		ModelName: modelName,
	}, nil
}

// NewClientsFromKeys builds one client per API key, preserving key order.
// Keys that fail to initialize are skipped with a warning.
func NewClientsFromKeys(apiKeys []string, modelName string) []GeminiClient {
	clients := make([]GeminiClient, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := NewGenAIClient(key, modelName)
		if err != nil {
			slog.Warn("Failed to initialize Gemini client", "key_index", i, "error", err)
			continue
		}
		clients = append(clients, *client)
	}
	return clients
}

// GenerateText sends a plain prompt and returns the first text part.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.Client.GenerativeModel(g.ModelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text, err := firstTextPart(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateStructured sends a prompt with a declared response schema and
// returns the raw JSON document the model produced. Shape conformance is
// delegated to the model; callers unmarshal into their own type.
func (g *GeminiClient) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	model := g.Client.GenerativeModel(g.ModelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := firstTextPart(resp)
	if err != nil {
		return nil, err
	}

	cleaned := stripJSONFence(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("AI response is not valid JSON. Raw response was: %s", cleaned)
	}
	return json.RawMessage(cleaned), nil
}

// GenerateStructuredWithImage attaches a base64 encoded image to the prompt.
func (g *GeminiClient) GenerateStructuredWithImage(ctx context.Context, prompt, imageBase64 string, schema *genai.Schema) (json.RawMessage, error) {
	parts := []genai.Part{genai.Text(prompt)}

	if imageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(trimDataURLPrefix(imageBase64))
		if err != nil {
			slog.Warn("Failed to decode image base64, sending prompt without image", "error", err)
		} else {
			parts = append(parts, genai.Blob{
				MIMEType: detectImageMIMEType(decoded),
				Data:     decoded,
			})
		}
	}

	model := g.Client.GenerativeModel(g.ModelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with image: %w", err)
	}

	text, err := firstTextPart(resp)
	if err != nil {
		return nil, err
	}

	cleaned := stripJSONFence(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("AI response is not valid JSON. Raw response was: %s", cleaned)
	}
	return json.RawMessage(cleaned), nil
}

func firstTextPart(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content returned from AI")
	}
	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(textPart), nil
}

func stripJSONFence(aiResponse string) string {
	if strings.HasPrefix(aiResponse, "```json") {
		aiResponse = strings.TrimPrefix(aiResponse, "```json\n")
		aiResponse = strings.TrimSuffix(aiResponse, "\n```")
	}
	return strings.TrimSpace(aiResponse)
}

func trimDataURLPrefix(imageBase64 string) string {
	if idx := strings.Index(imageBase64, ";base64,"); idx >= 0 {
		return imageBase64[idx+len(";base64,"):]
	}
	return imageBase64
}

// detectImageMIMEType detects the MIME type of an image based on magic bytes
func detectImageMIMEType(data []byte) string {
	if len(data) < 8 {
		return "image/jpeg" // default fallback
	}

	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}

	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// GIF: 47 49 46 38
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38 {
		return "image/gif"
	}

	// WebP: 52 49 46 46 ... 57 45 42 50
	if data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 {
		if len(data) > 11 && data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
			return "image/webp"
		}
	}

	return "image/jpeg"
}
