// Package gemini calls the Gemini API to analyze post and product images.
// Responses are requested as JSON under a response schema and then validated
// again by package schema before they reach the prompt compilers.
package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"postcraft/internal/domain"
	"postcraft/internal/imageinput"
	"postcraft/internal/infra"
	"postcraft/internal/middleware"
	"postcraft/internal/schema"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

// Options controls how the analyzer is configured.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Analyzer performs image and product analysis against Gemini.
type Analyzer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *infra.Logger
}

// NewAnalyzer builds an analyzer. An empty API key is rejected as invalid credentials.
func NewAnalyzer(ctx context.Context, opts Options) (*Analyzer, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: GEMINI_API_KEY is not set: %w", domain.ErrInvalidCredentials)
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(opts.BaseURL, "/") + "/"}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		l := infra.Logger(zerolog.New(io.Discard))
		logger = &l
	}

	return &Analyzer{client: client, model: model, timeout: timeout, logger: logger}, nil
}

// Model returns the configured model identifier.
func (a *Analyzer) Model() string { return a.model }

// AnalyzeImage identifies the elements of a social media post image.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img imageinput.Image) (domain.AnalysisResult, error) {
	raw, err := a.generate(ctx, "analyze", img, analysisInstruction, analysisSchema())
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	res, err := schema.ParseAnalysis([]byte(raw))
	if err != nil {
		a.logFailure(ctx, "analyze", err)
		return domain.AnalysisResult{}, ClassifyError(err)
	}
	return res, nil
}

// AnalyzeProduct describes a product photo, taking the user's product information into account.
func (a *Analyzer) AnalyzeProduct(ctx context.Context, img imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error) {
	instruction, err := ProductInstruction(info)
	if err != nil {
		return domain.ProductAnalysis{}, fmt.Errorf("gemini: render product instruction: %w", err)
	}
	raw, err := a.generate(ctx, "product-analyze", img, instruction, productSchema())
	if err != nil {
		return domain.ProductAnalysis{}, err
	}
	res, err := schema.ParseProductAnalysis([]byte(raw))
	if err != nil {
		a.logFailure(ctx, "product-analyze", err)
		return domain.ProductAnalysis{}, ClassifyError(err)
	}
	return res, nil
}

func (a *Analyzer) generate(ctx context.Context, op string, img imageinput.Image, instruction string, responseSchema *genai.Schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data}},
				{Text: instruction},
			},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}

	start := time.Now()
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		a.logFailure(ctx, op, err)
		return "", ClassifyError(err)
	}
	if err := blocked(resp); err != nil {
		a.logFailure(ctx, op, err)
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		err := fmt.Errorf("%w: model returned no content", domain.ErrMalformedOutput)
		a.logFailure(ctx, op, err)
		return "", err
	}

	a.logger.Debug().
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Str("model", a.model).
		Str("op", op).
		Int("image_bytes", len(img.Data)).
		Dur("latency", time.Since(start)).
		Msg("gemini: analysis completed")
	return text, nil
}

func blocked(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return nil
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return fmt.Errorf("%w: prompt blocked: %s %s", domain.ErrContentBlocked, fb.BlockReason, fb.BlockReasonMessage)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return fmt.Errorf("%w: response stopped by SAFETY filter", domain.ErrContentBlocked)
	}
	return nil
}

func (a *Analyzer) logFailure(ctx context.Context, op string, err error) {
	a.logger.Warn().
		Err(err).
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Str("model", a.model).
		Str("op", op).
		Str("kind", Kind(err)).
		Msg("gemini: analysis failed")
}
