package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"postcraft/internal/domain"
)

// ParseAnalysis decodes raw JSON and validates it as an AnalysisResult.
func ParseAnalysis(data []byte) (domain.AnalysisResult, error) {
	raw, err := decode(data, "analysis")
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return ValidateAnalysis(raw)
}

// ValidateAnalysis validates an already decoded JSON document. The whole
// payload is rejected when any violation is found; nothing is partially accepted.
// Element id uniqueness is not checked.
func ValidateAnalysis(raw any) (domain.AnalysisResult, error) {
	c := &checker{}
	m, ok := c.object("", raw)
	if !ok {
		return domain.AnalysisResult{}, c.err("analysis")
	}

	out := domain.AnalysisResult{
		OverallDescription: c.str(m, "", "overallDescription"),
		AspectRatio:        c.str(m, "", "aspectRatio"),
		DominantColors:     c.stringList(m, "", "dominantColors"),
		CurrentMood:        c.str(m, "", "currentMood"),
		LayoutDescription:  c.str(m, "", "layoutDescription"),
	}

	if v, ok := c.field(m, "", "elements"); ok {
		list, isList := v.([]any)
		if !isList {
			c.fail("elements", "expected array, got %s", kindOf(v))
		}
		out.Elements = make([]domain.AnalyzedElement, 0, len(list))
		for i, item := range list {
			el, ok := c.element(index("elements", i), item)
			if ok {
				out.Elements = append(out.Elements, el)
			}
		}
	}

	if err := c.err("analysis"); err != nil {
		return domain.AnalysisResult{}, err
	}
	return out, nil
}

func (c *checker) element(path string, v any) (domain.AnalyzedElement, bool) {
	before := len(c.violations)
	m, ok := c.object(path, v)
	if !ok {
		return domain.AnalyzedElement{}, false
	}

	el := domain.AnalyzedElement{
		ID:          c.str(m, path, "id"),
		Type:        enum(c, m, path, "type", domain.ElementTypes),
		Content:     c.str(m, path, "content"),
		Suggestions: c.stringList(m, path, "suggestions"),
	}
	if _, present := m["id"].(string); present && el.ID == "" {
		c.fail(join(path, "id"), "must not be empty")
	}

	if pv, ok := c.field(m, path, "position"); ok {
		ppath := join(path, "position")
		if pm, ok := c.object(ppath, pv); ok {
			el.Position = domain.Position{
				Area:  enum(c, pm, ppath, "area", domain.Areas),
				Layer: enum(c, pm, ppath, "layer", domain.Layers),
			}
		}
	}

	if sv, ok := c.field(m, path, "style"); ok {
		spath := join(path, "style")
		if sm, ok := c.object(spath, sv); ok {
			el.Style = domain.ElementStyle{
				FontSize:   enum(c, sm, spath, "fontSize", domain.FontSizes),
				FontWeight: enum(c, sm, spath, "fontWeight", domain.FontWeights),
				Color:      c.str(sm, spath, "color"),
				Alignment:  enum(c, sm, spath, "alignment", domain.Alignments),
			}
		}
	}

	return el, len(c.violations) == before
}

func decode(data []byte, subject string) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ViolationError{Subject: subject, Violations: []Violation{{Reason: "empty payload"}}}
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ViolationError{Subject: subject, Violations: []Violation{{Reason: fmt.Sprintf("invalid JSON: %v", err)}}}
	}
	return raw, nil
}
