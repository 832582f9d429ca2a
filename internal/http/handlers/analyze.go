package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"postcraft/internal/domain"
	"postcraft/internal/element"
	"postcraft/internal/imageinput"
	"postcraft/internal/prompt"
	"postcraft/internal/schema"
	"postcraft/internal/session"
	"postcraft/internal/template"
)

// multipartSlack leaves room for form boundaries and the info field.
const multipartSlack = 1 << 20

type analyzeResponse struct {
	Analysis domain.AnalysisResult `json:"analysis"`
	Groups   []element.Group       `json:"groups"`
	State    template.State        `json:"state"`
	Prompt   string                `json:"prompt"`
}

type productAnalyzeResponse struct {
	Analysis    domain.ProductAnalysis `json:"analysis"`
	Prompts     domain.ProductPrompts  `json:"prompts"`
	BaseContext string                 `json:"baseContext"`
	Clipboard   string                 `json:"clipboard"`
}

func newAnalyzeResponse(res domain.AnalysisResult) analyzeResponse {
	ws := session.New(res)
	return analyzeResponse{Analysis: res, Groups: ws.Groups(), State: ws.State(), Prompt: ws.Prompt()}
}

func newProductAnalyzeResponse(info domain.ProductInfo, res domain.ProductAnalysis) productAnalyzeResponse {
	prompts := prompt.BuildProductPrompts(info, res)
	return productAnalyzeResponse{
		Analysis:    res,
		Prompts:     prompts,
		BaseContext: prompt.ProductBaseContext(info, res),
		Clipboard:   prompt.ConcatenateForClipboard(prompts),
	}
}

// readUpload parses the multipart form and validates its image field.
func (a *App) readUpload(w http.ResponseWriter, r *http.Request) (imageinput.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUpload+multipartSlack)
	if err := r.ParseMultipartForm(a.MaxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return imageinput.Image{}, fmt.Errorf("upload exceeds %d bytes: %w", a.MaxUpload, domain.ErrImageTooLarge)
		}
		return imageinput.Image{}, fmt.Errorf("invalid multipart form: %v: %w", err, domain.ErrSchemaViolation)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return imageinput.Image{}, fmt.Errorf("form field %q is required: %w", "image", domain.ErrSchemaViolation)
	}
	defer file.Close()
	return imageinput.Read(file, header.Header.Get("Content-Type"), a.MaxUpload)
}

func (a *App) productInfo(r *http.Request) (domain.ProductInfo, error) {
	raw := strings.TrimSpace(r.FormValue("info"))
	if raw == "" {
		return domain.ProductInfo{}, nil
	}
	return schema.ParseProductInfo([]byte(raw))
}

func (a *App) requireAnalyzer(w http.ResponseWriter) bool {
	if a.Analyzer == nil {
		a.error(w, http.StatusServiceUnavailable, "analyzer_unavailable", "image analysis is not configured")
		return false
	}
	return true
}

// runTracked runs fn under the caller's supersession tracker when a session id
// is present, so only the newest submission's outcome is delivered.
func runTracked[T, R any](ctx context.Context, reg *session.Registry[T], key string, input T, fn func(context.Context, T) (R, error)) (R, error) {
	if key == "" {
		return fn(ctx, input)
	}
	return session.Run(ctx, reg.Get(key), input, fn)
}

func sessionKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// Analyze accepts a multipart "image" and returns its element analysis
// together with the initial editing state and compiled prompt.
func (a *App) Analyze(w http.ResponseWriter, r *http.Request) {
	if !a.requireAnalyzer(w) {
		return
	}
	img, err := a.readUpload(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := runTracked(r.Context(), a.images, sessionKey(r), img, a.Analyzer.AnalyzeImage)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newAnalyzeResponse(res))
}

// ProductAnalyze accepts a multipart "image" plus optional "info" JSON and
// returns the product analysis with all seven prompts.
func (a *App) ProductAnalyze(w http.ResponseWriter, r *http.Request) {
	if !a.requireAnalyzer(w) {
		return
	}
	img, err := a.readUpload(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	info, err := a.productInfo(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	in := productInput{Image: img, Info: info}
	res, err := runTracked(r.Context(), a.products, sessionKey(r), in, a.analyzeProduct)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newProductAnalyzeResponse(info, res))
}

func (a *App) analyzeProduct(ctx context.Context, in productInput) (domain.ProductAnalysis, error) {
	return a.Analyzer.AnalyzeProduct(ctx, in.Image, in.Info)
}

// RetryAnalyze re-runs the session's last image analysis with the same upload.
func (a *App) RetryAnalyze(w http.ResponseWriter, r *http.Request) {
	if !a.requireAnalyzer(w) {
		return
	}
	t, ok := lookupTracker(a, w, r, a.images)
	if !ok {
		return
	}
	res, ran, err := session.Retry(r.Context(), t, a.Analyzer.AnalyzeImage)
	if !ran {
		a.error(w, http.StatusNotFound, "nothing_to_retry", "no previous analysis for this session")
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newAnalyzeResponse(res))
}

// RetryProductAnalyze re-runs the session's last product analysis with the same upload and info.
func (a *App) RetryProductAnalyze(w http.ResponseWriter, r *http.Request) {
	if !a.requireAnalyzer(w) {
		return
	}
	t, ok := lookupTracker(a, w, r, a.products)
	if !ok {
		return
	}
	// The response must pair with the info the retry actually sent.
	var used productInput
	res, ran, err := session.Retry(r.Context(), t, func(ctx context.Context, in productInput) (domain.ProductAnalysis, error) {
		used = in
		return a.analyzeProduct(ctx, in)
	})
	if !ran {
		a.error(w, http.StatusNotFound, "nothing_to_retry", "no previous product analysis for this session")
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newProductAnalyzeResponse(used.Info, res))
}

// CancelAnalysis aborts whatever analysis the session has in flight.
func (a *App) CancelAnalysis(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(r)
	if key == "" {
		a.error(w, http.StatusBadRequest, "missing_session", SessionHeader+" header is required")
		return
	}
	if t, ok := a.images.Lookup(key); ok {
		t.Cancel()
	}
	if t, ok := a.products.Lookup(key); ok {
		t.Cancel()
	}
	w.WriteHeader(http.StatusNoContent)
}

func lookupTracker[T any](a *App, w http.ResponseWriter, r *http.Request, reg *session.Registry[T]) (*session.Tracker[T], bool) {
	key := sessionKey(r)
	if key == "" {
		a.error(w, http.StatusBadRequest, "missing_session", SessionHeader+" header is required")
		return nil, false
	}
	t, ok := reg.Lookup(key)
	if !ok {
		a.error(w, http.StatusNotFound, "nothing_to_retry", "no previous analysis for this session")
		return nil, false
	}
	return t, true
}
