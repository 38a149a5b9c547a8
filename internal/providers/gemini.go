package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nanoimg/nanoimg/internal/imgutil"
	"github.com/nanoimg/nanoimg/internal/log"
)

const (
	geminiBaseURL        = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiDefaultTimeout = 180 * time.Second
)

// ModelInfo describes one of the supported model aliases.
type ModelInfo struct {
	Alias       string `json:"alias"`
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Models maps the CLI-facing aliases to the provider's endpoint identifiers.
var Models = map[string]ModelInfo{
	"pro":   {Alias: "pro", ID: "gemini-3-pro-image-preview", Description: "Higher quality, follows instructions closely"},
	"flash": {Alias: "flash", ID: "gemini-2.5-flash-image", Description: "Faster, lower latency"},
}

type Gemini struct {
	config  Config
	client  *http.Client
	baseURL string
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64 encoded
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string          `json:"responseModalities"`
	ImageConfig        geminiImageConfig `json:"imageConfig"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGemini(config Config) *Gemini {
	timeout := geminiDefaultTimeout
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}
	return &Gemini{
		config:  config,
		client:  &http.Client{Timeout: timeout},
		baseURL: geminiBaseURL,
	}
}

// ModelID resolves the configured alias to the provider's endpoint
// identifier. Unknown aliases fail here, before any I/O.
func (p *Gemini) ModelID() (string, error) {
	info, ok := Models[p.config.Model]
	if !ok {
		return "", fmt.Errorf("unsupported model: %s (use pro or flash)", p.config.Model)
	}
	return info.ID, nil
}

func (p *Gemini) Generate(ctx context.Context, inputs Inputs) (*Result, error) {
	if p.config.APIKey == "" {
		return nil, ErrMissingKey
	}
	modelID, err := p.ModelID()
	if err != nil {
		return nil, err
	}

	payload, err := buildRequest(inputs, p.config.AspectRatio, p.config.ImageSize)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	// The key travels in a header, never the URL: transport errors wrap the
	// full URL into the user-facing message.
	url := fmt.Sprintf("%s/%s:generateContent", p.baseURL, modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiError geminiError
		if json.Unmarshal(body, &apiError) == nil && apiError.Error.Message != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: apiError.Error.Message}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return parseResponse(ctx, body)
}

// buildRequest assembles the JSON payload: the text prompt first, then one
// inline-data part per reference image, in input order. Pure, no I/O.
func buildRequest(inputs Inputs, aspectRatio, imageSize string) (*geminiRequest, error) {
	if inputs.Prompt == "" {
		return nil, fmt.Errorf("prompt must not be empty")
	}
	if len(inputs.References) > MaxReferences {
		return nil, ErrTooManyReferences
	}

	parts := []geminiPart{{Text: inputs.Prompt}}
	for _, ref := range inputs.References {
		mime, _ := imgutil.Detect(ref.Data)
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: mime,
				Data:     base64.StdEncoding.EncodeToString(ref.Data),
			},
		})
	}

	return &geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig: geminiImageConfig{
				AspectRatio: aspectRatio,
				ImageSize:   imageSize,
			},
		},
	}, nil
}

func parseResponse(ctx context.Context, body []byte) (*Result, error) {
	logger := log.FromContextOrDiscard(ctx)

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("response parsing failed: %w", err)
	}
	if len(response.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrNoImage)
	}

	parts := response.Candidates[0].Content.Parts
	for _, part := range parts {
		if part.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("image decoding failed: %w", err)
		}
		actual, _ := imgutil.Detect(data)
		if actual != part.InlineData.MimeType {
			logger.Info("API reported a different mime type", "reported", part.InlineData.MimeType, "actual", actual)
		}
		return &Result{Data: data, MimeType: actual}, nil
	}

	// No image. Surface any text the model returned instead; it usually
	// explains the refusal.
	for _, part := range parts {
		if part.Text != "" {
			logger.Info("model returned text instead of an image", "text", part.Text)
		}
	}
	return nil, ErrNoImage
}
