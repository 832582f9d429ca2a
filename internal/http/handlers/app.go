package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"postcraft/internal/domain"
	"postcraft/internal/imageinput"
	"postcraft/internal/infra"
	"postcraft/internal/middleware"
	"postcraft/internal/session"
	"postcraft/internal/template"
)

// SessionHeader names the client session whose newest analysis request wins.
const SessionHeader = "X-Session-ID"

// maxJSONBody bounds request bodies of the JSON endpoints.
const maxJSONBody = 2 << 20

// statusClientClosedRequest is reported when the caller went away mid-request.
const statusClientClosedRequest = 499

// Analyzer is the vision analysis service the handlers depend on.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, img imageinput.Image) (domain.AnalysisResult, error)
	AnalyzeProduct(ctx context.Context, img imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error)
}

type productInput struct {
	Image imageinput.Image
	Info  domain.ProductInfo
}

type App struct {
	Analyzer  Analyzer
	Templates *template.Catalog
	Logger    infra.Logger
	MaxUpload int64

	images   *session.Registry[imageinput.Image]
	products *session.Registry[productInput]
}

// Options configures NewApp.
type Options struct {
	Analyzer  Analyzer
	Templates *template.Catalog
	Logger    *infra.Logger
	MaxUpload int64
	// MaxSessions caps the supersession trackers kept per endpoint.
	MaxSessions int
}

func NewApp(opts Options) *App {
	catalog := opts.Templates
	if catalog == nil {
		catalog = template.Builtin()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	maxUpload := opts.MaxUpload
	if maxUpload <= 0 {
		maxUpload = imageinput.DefaultMaxBytes
	}
	return &App{
		Analyzer:  opts.Analyzer,
		Templates: catalog,
		Logger:    logger,
		MaxUpload: maxUpload,
		images:    session.NewRegistry[imageinput.Image](opts.MaxSessions),
		products:  session.NewRegistry[productInput](opts.MaxSessions),
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorBody{Error: errCode, Message: msg})
}

// fail maps err onto a status and error code and writes it.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, errCode := classify(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Str("error_code", errCode).
			Msg("request failed")
		if code == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	a.error(w, code, errCode, msg)
}

func classify(err error) (int, string) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "quota_exceeded"
	case errors.Is(err, domain.ErrContentBlocked):
		return http.StatusUnprocessableEntity, "content_blocked"
	// Provider payloads wrap a schema violation, so this must come first.
	case errors.Is(err, domain.ErrMalformedOutput):
		return http.StatusBadGateway, "malformed_output"
	case errors.Is(err, domain.ErrProviderFailure):
		return http.StatusBadGateway, "provider_failure"
	case errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict, "superseded"
	case errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusBadRequest, "unsupported_image"
	case errors.Is(err, domain.ErrImageTooLarge), errors.As(err, &tooBig):
		return http.StatusBadRequest, "image_too_large"
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, "invalid_range"
	case errors.Is(err, domain.ErrSchemaViolation):
		return http.StatusBadRequest, "schema_violation"
	case errors.Is(err, domain.ErrUnresolvedReference):
		return http.StatusBadRequest, "unresolved_reference"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "template_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// decodeJSON reads a bounded JSON body into dst.
func (a *App) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			a.error(w, http.StatusBadRequest, "invalid_body", "request body is empty")
			return false
		}
		a.error(w, http.StatusBadRequest, "invalid_body", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
