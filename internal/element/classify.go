// Package element classifies analyzed elements and orders them for display
// and prompt compilation.
package element

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"postcraft/internal/domain"
)

// Category is a coarse grouping over element types.
type Category string

const (
	CategoryText       Category = "text"
	CategoryVisual     Category = "visual"
	CategoryStructural Category = "structural"
)

// CanonicalOrder is the fixed display order of element types: text, then
// visual, then structural. Compiled prompts enumerate elements in this order.
var CanonicalOrder = [...]domain.ElementType{
	domain.ElementTitle,
	domain.ElementSubtitle,
	domain.ElementBodyText,
	domain.ElementCTAButton,
	domain.ElementImage,
	domain.ElementIcon,
	domain.ElementDecoration,
	domain.ElementBackground,
	domain.ElementShape,
	domain.ElementDivider,
}

// Classify maps an element type to its category. Unrecognized types are structural.
func Classify(t domain.ElementType) Category {
	switch t {
	case domain.ElementTitle, domain.ElementSubtitle, domain.ElementBodyText, domain.ElementCTAButton:
		return CategoryText
	case domain.ElementImage, domain.ElementIcon, domain.ElementDecoration:
		return CategoryVisual
	case domain.ElementBackground, domain.ElementShape, domain.ElementDivider:
		return CategoryStructural
	default:
		return CategoryStructural
	}
}

// IsText reports whether t belongs to the text category.
func IsText(t domain.ElementType) bool { return Classify(t) == CategoryText }

// Rank returns the position of t in CanonicalOrder; unknown types sort last.
func Rank(t domain.ElementType) int {
	for i, ct := range CanonicalOrder {
		if ct == t {
			return i
		}
	}
	return len(CanonicalOrder)
}

// Sort returns a copy of elements ordered by canonical type rank. Elements of
// the same type keep their analysis order.
func Sort(elements []domain.AnalyzedElement) []domain.AnalyzedElement {
	out := append([]domain.AnalyzedElement(nil), elements...)
	sort.SliceStable(out, func(i, j int) bool {
		return Rank(out[i].Type) < Rank(out[j].Type)
	})
	return out
}

// Group is all elements of one type.
type Group struct {
	Type          domain.ElementType       `json:"type"`
	Label         string                   `json:"label"`
	Category      Category                 `json:"category"`
	CategoryLabel string                   `json:"categoryLabel"`
	Elements      []domain.AnalyzedElement `json:"elements"`
}

// GroupByType buckets elements by type. Groups follow CanonicalOrder, then any
// unrecognized types in first-seen order; members keep analysis order.
func GroupByType(elements []domain.AnalyzedElement) []Group {
	byType := make(map[domain.ElementType][]domain.AnalyzedElement)
	var extra []domain.ElementType
	for _, el := range elements {
		if _, seen := byType[el.Type]; !seen && Rank(el.Type) == len(CanonicalOrder) {
			extra = append(extra, el.Type)
		}
		byType[el.Type] = append(byType[el.Type], el)
	}

	order := make([]domain.ElementType, 0, len(CanonicalOrder)+len(extra))
	order = append(order, CanonicalOrder[:]...)
	order = append(order, extra...)

	groups := make([]Group, 0, len(byType))
	for _, t := range order {
		members, ok := byType[t]
		if !ok {
			continue
		}
		c := Classify(t)
		groups = append(groups, Group{
			Type:          t,
			Label:         Label(t),
			Category:      c,
			CategoryLabel: c.Label(),
			Elements:      members,
		})
	}
	return groups
}

var typeLabels = map[domain.ElementType]string{
	domain.ElementTitle:      "Title",
	domain.ElementSubtitle:   "Subtitle",
	domain.ElementBodyText:   "Body Text",
	domain.ElementCTAButton:  "CTA Button",
	domain.ElementImage:      "Image",
	domain.ElementIcon:       "Icon",
	domain.ElementDecoration: "Decoration",
	domain.ElementBackground: "Background",
	domain.ElementShape:      "Shape",
	domain.ElementDivider:    "Divider",
}

// Label returns the human label of an element type. Unlabeled types are
// title-cased from their raw value, so "price_tag" becomes "Price Tag".
func Label(t domain.ElementType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	raw := strings.TrimSpace(strings.ReplaceAll(string(t), "_", " "))
	if raw == "" {
		return "Element"
	}
	// A Caser is stateful, so one is built per call.
	return cases.Title(language.Und).String(raw)
}

var categoryLabels = map[Category]string{
	CategoryText:       "Text elements",
	CategoryVisual:     "Visual elements",
	CategoryStructural: "Structural elements",
}

func (c Category) Label() string { return categoryLabels[c] }
