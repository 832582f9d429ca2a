// Package session models the caller-owned editing state that follows an
// analysis. Workspace values are immutable: every edit returns a new value.
package session

import (
	"fmt"

	"postcraft/internal/domain"
	"postcraft/internal/element"
	"postcraft/internal/prompt"
	"postcraft/internal/template"
)

type Workspace struct {
	analysis domain.AnalysisResult
	state    template.State
}

// New starts a workspace with one neutral setting per element and the baseline global.
func New(analysis domain.AnalysisResult) Workspace {
	return Workspace{analysis: analysis, state: template.Initial(analysis.Elements)}
}

// Restore rebuilds a workspace from state a client sent back. The state is
// reconciled against the analysis and the global setting is validated.
func Restore(analysis domain.AnalysisResult, s template.State) (Workspace, error) {
	if err := s.Global.Validate(); err != nil {
		return Workspace{}, err
	}
	for _, es := range s.Settings {
		if err := es.Validate(); err != nil {
			return Workspace{}, fmt.Errorf("setting %q: %w", es.ElementID, err)
		}
	}
	w := Workspace{analysis: analysis, state: s}
	w.state.Settings = append([]domain.ElementSetting(nil), s.Settings...)
	return w.Reconcile(), nil
}

func (w Workspace) Analysis() domain.AnalysisResult { return w.analysis }
func (w Workspace) Global() domain.GlobalSetting     { return w.state.Global }
func (w Workspace) TemplateID() string               { return w.state.TemplateID }

// Settings returns a copy of the element settings in analysis order.
func (w Workspace) Settings() []domain.ElementSetting {
	return append([]domain.ElementSetting(nil), w.state.Settings...)
}

// State returns a copy of the template state held by the workspace.
func (w Workspace) State() template.State {
	s := w.state
	s.Settings = w.Settings()
	return s
}

// Groups returns the analysis elements grouped for display.
func (w Workspace) Groups() []element.Group { return element.GroupByType(w.analysis.Elements) }

// Prompt compiles the current state.
func (w Workspace) Prompt() string {
	return prompt.BuildElementPrompt(w.analysis, w.state.Settings, w.state.Global)
}

func (w Workspace) index(id string) int {
	for i, s := range w.state.Settings {
		if s.ElementID == id {
			return i
		}
	}
	return -1
}

func (w Workspace) withSettings(settings []domain.ElementSetting) Workspace {
	w.state.Settings = settings
	return w
}

// UpdateSetting replaces the setting of one element.
func (w Workspace) UpdateSetting(s domain.ElementSetting) (Workspace, error) {
	if err := s.Validate(); err != nil {
		return w, err
	}
	if _, ok := w.analysis.Element(s.ElementID); !ok {
		return w, fmt.Errorf("element %q: %w", s.ElementID, domain.ErrUnresolvedReference)
	}
	i := w.index(s.ElementID)
	if i < 0 {
		// Every element gets a slot in New and Reconcile.
		return w, fmt.Errorf("element %q has no setting slot: %w", s.ElementID, domain.ErrUnknownElementReference)
	}
	settings := w.Settings()
	settings[i] = s
	return w.withSettings(settings), nil
}

// UpdateGlobal replaces the global setting after validation.
func (w Workspace) UpdateGlobal(g domain.GlobalSetting) (Workspace, error) {
	if err := g.Validate(); err != nil {
		return w, err
	}
	w.state.Global = g
	return w, nil
}

// BatchApply overlays the given patches onto every listed element. Ids with
// no setting are skipped. Either patch may be nil.
func (w Workspace) BatchApply(ids []string, dec *domain.DecorationPatch, enh *domain.EnhancementPatch) (Workspace, error) {
	if dec != nil {
		if err := dec.Validate(); err != nil {
			return w, err
		}
	}
	settings := w.Settings()
	for _, id := range ids {
		i := w.index(id)
		if i < 0 {
			continue
		}
		if dec != nil {
			settings[i].Decoration = dec.ApplyTo(settings[i].Decoration)
		}
		if enh != nil {
			settings[i].Enhancement = enh.ApplyTo(settings[i].Enhancement)
		}
	}
	return w.withSettings(settings), nil
}

// ApplyToType runs BatchApply over every element of type t.
func (w Workspace) ApplyToType(t domain.ElementType, dec *domain.DecorationPatch, enh *domain.EnhancementPatch) (Workspace, error) {
	var ids []string
	for _, el := range w.analysis.Elements {
		if el.Type == t {
			ids = append(ids, el.ID)
		}
	}
	return w.BatchApply(ids, dec, enh)
}

// SelectTemplate toggles t: selecting the active template deselects it.
func (w Workspace) SelectTemplate(t domain.StyleTemplate) Workspace {
	w.state = template.Toggle(w.State(), t, w.analysis.Elements)
	return w
}

// ClearTemplate deselects any template and resets every setting to neutral.
func (w Workspace) ClearTemplate() Workspace {
	w.state = template.Initial(w.analysis.Elements)
	return w
}

// Reconcile drops settings for unknown or duplicate element ids and adds
// neutral settings for elements lacking one. The result is in analysis order.
func (w Workspace) Reconcile() Workspace {
	byID := make(map[string]domain.ElementSetting, len(w.state.Settings))
	for _, s := range w.state.Settings {
		if _, seen := byID[s.ElementID]; !seen {
			byID[s.ElementID] = s
		}
	}
	settings := make([]domain.ElementSetting, 0, len(w.analysis.Elements))
	placed := make(map[string]bool, len(w.analysis.Elements))
	for _, el := range w.analysis.Elements {
		if placed[el.ID] {
			continue
		}
		placed[el.ID] = true
		s, ok := byID[el.ID]
		if !ok {
			s = domain.NeutralSetting(el.ID)
		}
		settings = append(settings, s)
	}
	return w.withSettings(settings)
}
