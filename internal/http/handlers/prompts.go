package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"postcraft/internal/domain"
	"postcraft/internal/prompt"
	"postcraft/internal/schema"
	"postcraft/internal/session"
	"postcraft/internal/template"
)

// workspaceRequest is the editing state a client sends back with each call.
type workspaceRequest struct {
	Analysis           json.RawMessage         `json:"analysis"`
	Settings           []domain.ElementSetting `json:"settings"`
	Global             *domain.GlobalSetting   `json:"global"`
	SelectedTemplateID string                  `json:"selectedTemplateId"`
}

type workspaceResponse struct {
	State      template.State `json:"state"`
	Prompt     string         `json:"prompt"`
	Unresolved []string       `json:"unresolved,omitempty"`
}

// workspace validates the analysis and rebuilds the editing state around it.
// Settings for unknown elements are reported and dropped.
func (req workspaceRequest) workspace() (session.Workspace, []string, error) {
	analysis, err := schema.ParseAnalysis(req.Analysis)
	if err != nil {
		return session.Workspace{}, nil, err
	}
	global := domain.BaselineGlobal()
	if req.Global != nil {
		global = *req.Global
	}
	unresolved := prompt.Unresolved(analysis, req.Settings)
	ws, err := session.Restore(analysis, template.State{
		TemplateID: req.SelectedTemplateID,
		Global:     global,
		Settings:   req.Settings,
	})
	if err != nil {
		return session.Workspace{}, nil, err
	}
	return ws, unresolved, nil
}

func newWorkspaceResponse(ws session.Workspace, unresolved []string) workspaceResponse {
	return workspaceResponse{State: ws.State(), Prompt: ws.Prompt(), Unresolved: unresolved}
}

// ListTemplates returns the style template catalog.
func (a *App) ListTemplates(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Templates.List()})
}

// Prompt compiles the element prompt for the submitted state.
func (a *App) Prompt(w http.ResponseWriter, r *http.Request) {
	var req workspaceRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	ws, unresolved, err := req.workspace()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newWorkspaceResponse(ws, unresolved))
}

// ApplyTemplate toggles template {id} on the submitted state.
func (a *App) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := a.Templates.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req workspaceRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	ws, unresolved, err := req.workspace()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newWorkspaceResponse(ws.SelectTemplate(tmpl), unresolved))
}

// ClearTemplate deselects any template and resets the submitted state to neutral.
func (a *App) ClearTemplate(w http.ResponseWriter, r *http.Request) {
	var req workspaceRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	ws, _, err := req.workspace()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newWorkspaceResponse(ws.ClearTemplate(), nil))
}

type batchRequest struct {
	workspaceRequest
	ElementIDs  []string                 `json:"elementIds"`
	ElementType domain.ElementType       `json:"elementType"`
	Decoration  *domain.DecorationPatch  `json:"decoration"`
	Enhancement *domain.EnhancementPatch `json:"enhancement"`
}

// BatchApply overlays partial settings on a set of elements, addressed either
// by id or by element type.
func (a *App) BatchApply(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	ws, unresolved, err := req.workspace()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	switch {
	case req.ElementType != "":
		if !req.ElementType.Valid() {
			a.fail(w, r, fmt.Errorf("elementType %q is not a recognized type: %w", req.ElementType, domain.ErrSchemaViolation))
			return
		}
		ws, err = ws.ApplyToType(req.ElementType, req.Decoration, req.Enhancement)
	default:
		ws, err = ws.BatchApply(req.ElementIDs, req.Decoration, req.Enhancement)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newWorkspaceResponse(ws, unresolved))
}

type productPromptsRequest struct {
	Info     json.RawMessage `json:"info"`
	Analysis json.RawMessage `json:"analysis"`
}

func (req productPromptsRequest) prompts() (domain.ProductInfo, domain.ProductPrompts, error) {
	var info domain.ProductInfo
	if len(req.Info) > 0 && string(req.Info) != "null" {
		parsed, err := schema.ParseProductInfo(req.Info)
		if err != nil {
			return info, domain.ProductPrompts{}, err
		}
		info = parsed
	}
	analysis, err := schema.ParseProductAnalysis(req.Analysis)
	if err != nil {
		return info, domain.ProductPrompts{}, err
	}
	return info, prompt.BuildProductPrompts(info, analysis), nil
}

// ProductPrompts compiles the seven product prompts and their clipboard form.
func (a *App) ProductPrompts(w http.ResponseWriter, r *http.Request) {
	var req productPromptsRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	_, prompts, err := req.prompts()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"prompts":   prompts,
		"clipboard": prompt.ConcatenateForClipboard(prompts),
		"types":     domain.ProductImageTypes,
	})
}

// ExportProductPrompts returns the product prompts as a zip download.
func (a *App) ExportProductPrompts(w http.ResponseWriter, r *http.Request) {
	var req productPromptsRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	_, prompts, err := req.prompts()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	data, err := prompt.Bundle(prompts)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="product-prompts.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
