package providers

import (
	"context"
	"errors"
	"fmt"
)

type Provider interface {
	Generate(ctx context.Context, inputs Inputs) (*Result, error)
}

// FileInput is a reference image loaded into memory.
type FileInput struct {
	Data     []byte
	Filename string
}

type Inputs struct {
	Prompt     string
	References []FileInput
}

// Result is the decoded image returned by a provider. MimeType reflects the
// actual format sniffed from the bytes, not whatever the API reported.
type Result struct {
	Data     []byte
	MimeType string
}

type Config struct {
	APIKey      string
	Model       string
	AspectRatio string
	ImageSize   string
	Timeout     int // seconds; 0 means the provider default
}

// MaxReferences is the ceiling on inline reference images per request.
const MaxReferences = 14

var (
	ErrMissingKey        = errors.New("API key required. Set via --key or the GEMINI_API_KEY environment variable")
	ErrTooManyReferences = fmt.Errorf("too many reference images: at most %d are supported", MaxReferences)
	ErrNoImage           = errors.New("no image data in response")
)

// APIError is a non-2xx answer from the remote API, carrying the provider's
// status code and message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error [%d]: %s", e.StatusCode, e.Message)
}
