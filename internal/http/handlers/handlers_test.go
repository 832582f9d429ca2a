package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"postcraft/internal/domain"
	"postcraft/internal/imageinput"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRfake")

const analysisJSON = `{
  "overallDescription": "A summer sale post",
  "aspectRatio": "1:1",
  "dominantColors": ["orange", "white"],
  "currentMood": "cheerful",
  "elements": [
    {"id": "title_1", "type": "title", "content": "Summer Sale",
     "position": {"area": "top", "layer": "foreground"},
     "style": {"fontSize": "xlarge", "fontWeight": "bold", "color": "white", "alignment": "center"},
     "suggestions": []},
    {"id": "bg_1", "type": "background", "content": "beach photo",
     "position": {"area": "full", "layer": "background"},
     "style": {"fontSize": "medium", "fontWeight": "regular", "color": "blue", "alignment": "center"},
     "suggestions": []}
  ],
  "layoutDescription": "headline over a photo"
}`

const productJSON = `{
  "productDescription": "wireless earbud",
  "appearance": "compact oval shape",
  "material": "matte plastic",
  "colorPalette": ["black", "silver"],
  "inferredUseCase": "daily commute",
  "visualStyle": "tech-minimal"
}`

type fakeAnalyzer struct {
	image   func(ctx context.Context, img imageinput.Image) (domain.AnalysisResult, error)
	product func(ctx context.Context, img imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error)
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, img imageinput.Image) (domain.AnalysisResult, error) {
	return f.image(ctx, img)
}

func (f *fakeAnalyzer) AnalyzeProduct(ctx context.Context, img imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error) {
	return f.product(ctx, img, info)
}

func mustAnalysis(t *testing.T) domain.AnalysisResult {
	t.Helper()
	var res domain.AnalysisResult
	if err := json.Unmarshal([]byte(analysisJSON), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func mustProduct(t *testing.T) domain.ProductAnalysis {
	t.Helper()
	var res domain.ProductAnalysis
	if err := json.Unmarshal([]byte(productJSON), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func uploadRequest(t *testing.T, path string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "post.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(data)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, path string, v any) *http.Request {
	t.Helper()
	var raw []byte
	switch b := v.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	body := decodeBody[errorBody](t, rr)
	if body.Error != code {
		t.Fatalf("error code = %q, want %q", body.Error, code)
	}
	if body.Message == "" {
		t.Fatal("error message is empty")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded"},
		{domain.ErrContentBlocked, http.StatusUnprocessableEntity, "content_blocked"},
		{fmt.Errorf("%w: %w", domain.ErrMalformedOutput, domain.ErrSchemaViolation), http.StatusBadGateway, "malformed_output"},
		{domain.ErrProviderFailure, http.StatusBadGateway, "provider_failure"},
		{domain.ErrSuperseded, http.StatusConflict, "superseded"},
		{domain.ErrUnsupportedImage, http.StatusBadRequest, "unsupported_image"},
		{domain.ErrImageTooLarge, http.StatusBadRequest, "image_too_large"},
		{fmt.Errorf("intensity: %w", domain.ErrInvalidRange), http.StatusBadRequest, "invalid_range"},
		{domain.ErrSchemaViolation, http.StatusBadRequest, "schema_violation"},
		{domain.ErrTemplateNotFound, http.StatusNotFound, "template_not_found"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			status, code := classify(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("classify(%v) = %d %q, want %d %q", tc.err, status, code, tc.status, tc.code)
			}
		})
	}
}

func TestAnalyzeReturnsInitialState(t *testing.T) {
	var got imageinput.Image
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		image: func(_ context.Context, img imageinput.Image) (domain.AnalysisResult, error) {
			got = img
			return mustAnalysis(t), nil
		},
	}})

	rr := httptest.NewRecorder()
	app.Analyze(rr, uploadRequest(t, "/api/analyze", pngBytes, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got.MIMEType != "image/png" || !bytes.Equal(got.Data, pngBytes) {
		t.Fatalf("analyzer received %q (%d bytes)", got.MIMEType, len(got.Data))
	}
	resp := decodeBody[analyzeResponse](t, rr)
	want := []domain.ElementSetting{domain.NeutralSetting("title_1"), domain.NeutralSetting("bg_1")}
	if diff := cmp.Diff(want, resp.State.Settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	if resp.State.TemplateID != "" || resp.State.Global != domain.BaselineGlobal() {
		t.Fatalf("state = %+v, want baseline without template", resp.State)
	}
	if len(resp.Groups) != 2 || !strings.Contains(resp.Prompt, "Summer Sale") {
		t.Fatalf("groups = %d prompt = %q", len(resp.Groups), resp.Prompt)
	}
}

func TestAnalyzeRejectsBadUploads(t *testing.T) {
	called := false
	app := NewApp(Options{MaxUpload: 64, Analyzer: &fakeAnalyzer{
		image: func(context.Context, imageinput.Image) (domain.AnalysisResult, error) {
			called = true
			return domain.AnalysisResult{}, nil
		},
	}})

	rr := httptest.NewRecorder()
	app.Analyze(rr, uploadRequest(t, "/api/analyze", []byte("just some text"), nil))
	expectError(t, rr, http.StatusBadRequest, "unsupported_image")

	rr = httptest.NewRecorder()
	big := append(append([]byte(nil), pngBytes...), make([]byte, 128)...)
	app.Analyze(rr, uploadRequest(t, "/api/analyze", big, nil))
	expectError(t, rr, http.StatusBadRequest, "image_too_large")

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	app.Analyze(rr, req)
	expectError(t, rr, http.StatusBadRequest, "schema_violation")

	if called {
		t.Fatal("analyzer called for an invalid upload")
	}
}

func TestAnalyzeMapsProviderErrors(t *testing.T) {
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		image: func(context.Context, imageinput.Image) (domain.AnalysisResult, error) {
			return domain.AnalysisResult{}, fmt.Errorf("gemini: %w", domain.ErrQuotaExceeded)
		},
	}})
	rr := httptest.NewRecorder()
	app.Analyze(rr, uploadRequest(t, "/api/analyze", pngBytes, nil))
	expectError(t, rr, http.StatusTooManyRequests, "quota_exceeded")
}

func TestAnalyzeWithoutAnalyzer(t *testing.T) {
	app := NewApp(Options{})
	rr := httptest.NewRecorder()
	app.Analyze(rr, uploadRequest(t, "/api/analyze", pngBytes, nil))
	expectError(t, rr, http.StatusServiceUnavailable, "analyzer_unavailable")
}

func TestAnalyzeSupersededBySameSession(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		image: func(ctx context.Context, _ imageinput.Image) (domain.AnalysisResult, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-ctx.Done()
				return domain.AnalysisResult{}, ctx.Err()
			}
			return mustAnalysis(t), nil
		},
	}})

	first := httptest.NewRecorder()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := uploadRequest(t, "/api/analyze", pngBytes, nil)
		req.Header.Set(SessionHeader, "s1")
		app.Analyze(first, req)
	}()
	<-started

	second := httptest.NewRecorder()
	req := uploadRequest(t, "/api/analyze", pngBytes, nil)
	req.Header.Set(SessionHeader, "s1")
	app.Analyze(second, req)
	wg.Wait()

	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, body %s", second.Code, second.Body.String())
	}
	expectError(t, first, http.StatusConflict, "superseded")
}

func TestRetryAnalyze(t *testing.T) {
	var seen [][]byte
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		image: func(_ context.Context, img imageinput.Image) (domain.AnalysisResult, error) {
			seen = append(seen, img.Data)
			if len(seen) == 1 {
				return domain.AnalysisResult{}, domain.ErrProviderFailure
			}
			return mustAnalysis(t), nil
		},
	}})

	retry := func(session string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/analyze/retry", nil)
		if session != "" {
			req.Header.Set(SessionHeader, session)
		}
		app.RetryAnalyze(rr, req)
		return rr
	}

	expectError(t, retry(""), http.StatusBadRequest, "missing_session")
	expectError(t, retry("s1"), http.StatusNotFound, "nothing_to_retry")

	rr := httptest.NewRecorder()
	req := uploadRequest(t, "/api/analyze", pngBytes, nil)
	req.Header.Set(SessionHeader, "s1")
	app.Analyze(rr, req)
	expectError(t, rr, http.StatusBadGateway, "provider_failure")

	if rr := retry("s1"); rr.Code != http.StatusOK {
		t.Fatalf("retry status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(seen) != 2 || !bytes.Equal(seen[0], seen[1]) {
		t.Fatalf("retry did not resend the original image: %d calls", len(seen))
	}
}

func TestCancelAnalysis(t *testing.T) {
	app := NewApp(Options{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/cancel", nil)
	req.Header.Set(SessionHeader, "s1")
	app.CancelAnalysis(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
}

func TestRetryProductAnalyzeKeepsInfo(t *testing.T) {
	var infos []domain.ProductInfo
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		product: func(_ context.Context, _ imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error) {
			infos = append(infos, info)
			if len(infos) == 1 {
				return domain.ProductAnalysis{}, domain.ErrQuotaExceeded
			}
			return mustProduct(t), nil
		},
	}})

	rr := httptest.NewRecorder()
	req := uploadRequest(t, "/api/product-analyze", pngBytes, map[string]string{"info": `{"name": "AirBeat Mini"}`})
	req.Header.Set(SessionHeader, "s1")
	app.ProductAnalyze(rr, req)
	expectError(t, rr, http.StatusTooManyRequests, "quota_exceeded")

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/product-analyze/retry", nil)
	req.Header.Set(SessionHeader, "s1")
	app.RetryProductAnalyze(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("retry status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(infos) != 2 || infos[1].Name != "AirBeat Mini" {
		t.Fatalf("retry info = %+v", infos)
	}
	resp := decodeBody[productAnalyzeResponse](t, rr)
	if !strings.Contains(resp.Prompts[0].Prompt, "AirBeat Mini") || !strings.Contains(resp.BaseContext, "Product: AirBeat Mini") {
		t.Fatalf("retry response not built from the retried info: %q", resp.BaseContext)
	}
}

func TestProductAnalyze(t *testing.T) {
	var gotInfo domain.ProductInfo
	app := NewApp(Options{Analyzer: &fakeAnalyzer{
		product: func(_ context.Context, _ imageinput.Image, info domain.ProductInfo) (domain.ProductAnalysis, error) {
			gotInfo = info
			return mustProduct(t), nil
		},
	}})

	rr := httptest.NewRecorder()
	app.ProductAnalyze(rr, uploadRequest(t, "/api/product-analyze", pngBytes, map[string]string{
		"info": `{"name": "AirBeat Mini", "sellingPoints": ["12h battery"]}`,
	}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if gotInfo.Name != "AirBeat Mini" {
		t.Fatalf("analyzer info = %+v", gotInfo)
	}
	resp := decodeBody[productAnalyzeResponse](t, rr)
	if resp.Prompts[0].Type != domain.ProductRender3D || !strings.Contains(resp.Prompts[0].Prompt, "AirBeat Mini") {
		t.Fatalf("first prompt = %+v", resp.Prompts[0])
	}
	if !strings.HasPrefix(resp.Clipboard, "[1] 3D Render\n") || resp.BaseContext == "" {
		t.Fatalf("clipboard = %q base = %q", resp.Clipboard, resp.BaseContext)
	}

	rr = httptest.NewRecorder()
	app.ProductAnalyze(rr, uploadRequest(t, "/api/product-analyze", pngBytes, map[string]string{
		"info": `{"sellingPoints": ["a", "b", "c", "d"]}`,
	}))
	expectError(t, rr, http.StatusBadRequest, "schema_violation")
}

func TestPrompt(t *testing.T) {
	app := NewApp(Options{})
	body := fmt.Sprintf(`{"analysis": %s, "settings": [
	  {"elementId": "title_1", "decoration": {"style": "glow", "intensity": 80}},
	  {"elementId": "ghost", "decoration": {"style": "none", "intensity": 50}}
	]}`, analysisJSON)

	rr := httptest.NewRecorder()
	app.Prompt(rr, jsonRequest(t, "/api/prompt", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[workspaceResponse](t, rr)
	if diff := cmp.Diff([]string{"ghost"}, resp.Unresolved); diff != "" {
		t.Fatalf("unresolved mismatch (-want +got):\n%s", diff)
	}
	if len(resp.State.Settings) != 2 || resp.State.Settings[1].ElementID != "bg_1" {
		t.Fatalf("settings not reconciled: %+v", resp.State.Settings)
	}
	if !strings.Contains(resp.Prompt, "intensity 80%") {
		t.Fatalf("prompt ignores the glow setting:\n%s", resp.Prompt)
	}
}

func TestPromptValidation(t *testing.T) {
	app := NewApp(Options{})
	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty body", "", "invalid_body"},
		{"broken json", "{", "invalid_body"},
		{"missing analysis", `{}`, "schema_violation"},
		{"bad analysis", `{"analysis": {"elements": "nope"}}`, "schema_violation"},
		{"density out of range", fmt.Sprintf(`{"analysis": %s, "global": {"mood": "bold", "colorScheme": "pastel", "decorationDensity": 150, "overallRefinement": 50}}`, analysisJSON), "invalid_range"},
		{"intensity out of range", fmt.Sprintf(`{"analysis": %s, "settings": [{"elementId": "title_1", "decoration": {"style": "glow", "intensity": -1}}]}`, analysisJSON), "invalid_range"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.Prompt(rr, jsonRequest(t, "/api/prompt", tc.body))
			expectError(t, rr, http.StatusBadRequest, tc.code)
		})
	}
}

func TestApplyTemplateToggles(t *testing.T) {
	app := NewApp(Options{})
	r := chi.NewRouter()
	r.Post("/api/templates/{id}/apply", app.ApplyTemplate)

	apply := func(id, selected string) *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"analysis": %s, "selectedTemplateId": %q}`, analysisJSON, selected)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, jsonRequest(t, "/api/templates/"+id+"/apply", body))
		return rr
	}

	rr := apply("professional", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	on := decodeBody[workspaceResponse](t, rr)
	if on.State.TemplateID != "professional" || on.State.Global.ColorScheme != domain.ColorMonochrome {
		t.Fatalf("state after apply = %+v", on.State)
	}
	if on.State.Settings[0].Decoration.Style != domain.DecorationUnderline {
		t.Fatalf("title decoration = %q, want underline", on.State.Settings[0].Decoration.Style)
	}

	off := decodeBody[workspaceResponse](t, apply("professional", "professional"))
	if off.State.TemplateID != "" || off.State.Global != domain.BaselineGlobal() {
		t.Fatalf("state after toggle off = %+v", off.State)
	}

	expectError(t, apply("nope", ""), http.StatusNotFound, "template_not_found")
}

func TestClearTemplate(t *testing.T) {
	app := NewApp(Options{})
	body := fmt.Sprintf(`{"analysis": %s, "selectedTemplateId": "playful", "settings": [
	  {"elementId": "title_1", "decoration": {"style": "glow", "intensity": 80}}]}`, analysisJSON)
	rr := httptest.NewRecorder()
	app.ClearTemplate(rr, jsonRequest(t, "/api/templates/clear", body))
	resp := decodeBody[workspaceResponse](t, rr)
	want := []domain.ElementSetting{domain.NeutralSetting("title_1"), domain.NeutralSetting("bg_1")}
	if diff := cmp.Diff(want, resp.State.Settings); diff != "" || resp.State.TemplateID != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchApply(t *testing.T) {
	app := NewApp(Options{})
	body := fmt.Sprintf(`{"analysis": %s, "elementType": "background", "decoration": {"style": "gradient"}}`, analysisJSON)
	rr := httptest.NewRecorder()
	app.BatchApply(rr, jsonRequest(t, "/api/settings/batch", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[workspaceResponse](t, rr)
	bg := resp.State.Settings[1].Decoration
	if bg.Style != domain.DecorationGradient || bg.Intensity != domain.NeutralIntensity {
		t.Fatalf("background decoration = %+v", bg)
	}
	if resp.State.Settings[0].Decoration.Style != domain.DecorationNone {
		t.Fatalf("title touched by type batch: %+v", resp.State.Settings[0])
	}

	rr = httptest.NewRecorder()
	body = fmt.Sprintf(`{"analysis": %s, "elementIds": ["title_1"], "decoration": {"intensity": 101}}`, analysisJSON)
	app.BatchApply(rr, jsonRequest(t, "/api/settings/batch", body))
	expectError(t, rr, http.StatusBadRequest, "invalid_range")

	rr = httptest.NewRecorder()
	body = fmt.Sprintf(`{"analysis": %s, "elementType": "sticker"}`, analysisJSON)
	app.BatchApply(rr, jsonRequest(t, "/api/settings/batch", body))
	expectError(t, rr, http.StatusBadRequest, "schema_violation")
}

func TestProductPromptsAndExport(t *testing.T) {
	app := NewApp(Options{})
	body := fmt.Sprintf(`{"info": {"name": "AirBeat Mini"}, "analysis": %s}`, productJSON)

	rr := httptest.NewRecorder()
	app.ProductPrompts(rr, jsonRequest(t, "/api/product-prompts", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[struct {
		Prompts   []domain.ProductPrompt `json:"prompts"`
		Clipboard string                 `json:"clipboard"`
	}](t, rr)
	if len(resp.Prompts) != domain.ProductImageTypeCount || resp.Clipboard == "" {
		t.Fatalf("prompts = %d clipboard = %q", len(resp.Prompts), resp.Clipboard)
	}

	rr = httptest.NewRecorder()
	app.ExportProductPrompts(rr, jsonRequest(t, "/api/product-prompts/export", body))
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "application/zip" {
		t.Fatalf("status = %d type = %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "product-prompts.zip") {
		t.Fatalf("Content-Disposition = %q", rr.Header().Get("Content-Disposition"))
	}
	data := rr.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(zr.File) != domain.ProductImageTypeCount+1 {
		t.Fatalf("zip files = %d", len(zr.File))
	}

	rr = httptest.NewRecorder()
	app.ProductPrompts(rr, jsonRequest(t, "/api/product-prompts", `{"analysis": {"material": 3}}`))
	expectError(t, rr, http.StatusBadRequest, "schema_violation")
}

func TestListTemplatesAndHealth(t *testing.T) {
	app := NewApp(Options{})
	rr := httptest.NewRecorder()
	app.ListTemplates(rr, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	resp := decodeBody[struct {
		Items []domain.StyleTemplate `json:"items"`
	}](t, rr)
	if len(resp.Items) != 4 || resp.Items[0].ID != "professional" {
		t.Fatalf("templates = %d", len(resp.Items))
	}

	rr = httptest.NewRecorder()
	app.Health(rr, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d", rr.Code)
	}
}
