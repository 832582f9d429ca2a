package template

import (
	"postcraft/internal/domain"
)

// State is the caller-owned template selection together with the settings it produced.
type State struct {
	TemplateID string                  `json:"selectedTemplateId"`
	Global     domain.GlobalSetting    `json:"global"`
	Settings   []domain.ElementSetting `json:"settings"`
}

// Apply overlays the template's per-type defaults onto current and returns the
// template's global setting. Only fields the template defines are replaced.
// Settings whose element is unknown, or whose type has no default, pass
// through unchanged. The result has the same length and order as current.
func Apply(t domain.StyleTemplate, elements []domain.AnalyzedElement, current []domain.ElementSetting) ([]domain.ElementSetting, domain.GlobalSetting) {
	types := make(map[string]domain.ElementType, len(elements))
	for _, el := range elements {
		if _, seen := types[el.ID]; !seen {
			types[el.ID] = el.Type
		}
	}

	out := make([]domain.ElementSetting, len(current))
	for i, s := range current {
		out[i] = s
		typ, ok := types[s.ElementID]
		if !ok {
			continue
		}
		def, ok := t.Defaults.ElementDefaults[typ]
		if !ok {
			continue
		}
		out[i] = overlay(s, def)
	}
	return out, t.Defaults.GlobalSetting
}

func overlay(s domain.ElementSetting, def domain.ElementDefault) domain.ElementSetting {
	if def.Decoration != nil {
		s.Decoration = def.Decoration.ApplyTo(s.Decoration)
	}
	if def.Enhancement != nil {
		s.Enhancement = def.Enhancement.ApplyTo(s.Enhancement)
	}
	return s
}

// Clear returns neutral settings for every element, in analysis order, and the baseline global.
func Clear(elements []domain.AnalyzedElement) ([]domain.ElementSetting, domain.GlobalSetting) {
	out := make([]domain.ElementSetting, len(elements))
	for i, el := range elements {
		out[i] = domain.NeutralSetting(el.ID)
	}
	return out, domain.BaselineGlobal()
}

// Initial is the state right after an analysis: no template, neutral settings.
func Initial(elements []domain.AnalyzedElement) State {
	settings, global := Clear(elements)
	return State{Global: global, Settings: settings}
}

// Toggle selects t, or deselects it when it is already the selected template.
// Deselecting restores the neutral baseline rather than re-applying t.
func Toggle(s State, t domain.StyleTemplate, elements []domain.AnalyzedElement) State {
	if s.TemplateID != "" && s.TemplateID == t.ID {
		return Initial(elements)
	}
	settings, global := Apply(t, elements, s.Settings)
	return State{TemplateID: t.ID, Global: global, Settings: settings}
}
