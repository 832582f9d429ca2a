// Package prompt compiles analyses and user settings into instruction text
// for image generation tools. Every function here is pure and deterministic.
package prompt

import (
	"fmt"
	"strings"

	"postcraft/internal/domain"
	"postcraft/internal/element"
)

const (
	sectionSeparator = "---"
	elementHeader    = "Element details:"

	imageProtectionLine = "IMPORTANT: keep the original photographic content of this image exactly as it is; only the surrounding treatment (border, shadow, corner style) may change"
	readabilityLine     = "Readability is mandatory: decorative effects must never cover or blur the text, and the text must keep sufficient contrast against its background"
	preservationLine    = "- Never redraw or replace any original photograph, product shot or portrait inside the composition; reproduce it faithfully"
)

func moodLabel(m domain.Mood) string {
	switch m {
	case domain.MoodProfessional:
		return "professional and businesslike"
	case domain.MoodPlayful:
		return "playful and fun"
	case domain.MoodElegant:
		return "elegant and refined"
	case domain.MoodBold:
		return "bold and striking"
	case domain.MoodMinimal:
		return "minimal and clean"
	case domain.MoodLuxury:
		return "luxurious and premium"
	}
	return string(m)
}

func colorSchemeLabel(c domain.ColorScheme) string {
	switch c {
	case domain.ColorKeepOriginal:
		return "keep the original palette"
	case domain.ColorMonochrome:
		return "monochrome"
	case domain.ColorComplementary:
		return "complementary colors"
	case domain.ColorAnalogous:
		return "harmonious analogous colors"
	case domain.ColorPastel:
		return "soft pastel tones"
	case domain.ColorVibrant:
		return "vivid, energetic tones"
	}
	return string(c)
}

// decorationLabel returns "" for DecorationNone.
func decorationLabel(s domain.DecorationStyle) string {
	switch s {
	case domain.DecorationNone:
		return ""
	case domain.DecorationUnderline:
		return "add a decorative underline"
	case domain.DecorationOutline:
		return "add a refined outline frame"
	case domain.DecorationShadow:
		return "add a dimensional drop shadow"
	case domain.DecorationGradient:
		return "apply a gradient effect"
	case domain.DecorationGlow:
		return "add a soft glow effect"
	case domain.DecorationBadge:
		return "present it as a badge or label"
	}
	return ""
}

func overallSection(a domain.AnalysisResult, g domain.GlobalSetting) string {
	lines := []string{
		fmt.Sprintf("Redesign this social media post image. Set the overall style to \"%s\".", moodLabel(g.Mood)),
		fmt.Sprintf("Color scheme: %s.", colorSchemeLabel(g.ColorScheme)),
		fmt.Sprintf("Original layout: %s.", a.LayoutDescription),
		fmt.Sprintf("Aspect ratio: %s.", a.AspectRatio),
		fmt.Sprintf("Original dominant colors: %s.", strings.Join(a.DominantColors, ", ")),
	}
	return strings.Join(lines, "\n")
}

func elementBlock(el domain.AnalyzedElement, s domain.ElementSetting) string {
	lines := []string{
		fmt.Sprintf("[%s] \"%s\" (area: %s)", element.Label(el.Type), el.Content, el.Position.Area),
	}
	detail := func(format string, args ...any) {
		lines = append(lines, "  - "+fmt.Sprintf(format, args...))
	}

	if el.Type == domain.ElementImage {
		detail(imageProtectionLine)
	}
	if label := decorationLabel(s.Decoration.Style); label != "" {
		detail("%s (intensity %d%%)", label, s.Decoration.Intensity)
	}
	if v := s.Enhancement.FontSuggestion; v != "" {
		detail("font style: %s", v)
	}
	if v := s.Enhancement.Texture; v != "" {
		detail("texture: %s", v)
	}
	if v := s.Enhancement.Effect; v != "" {
		detail("visual effect: %s", v)
	}
	if v := s.Enhancement.ColorOverride; v != "" {
		detail("change color to: %s", v)
	}
	if v := s.Decoration.CustomNote; v != "" {
		detail("additional request: %s", v)
	}
	if element.IsText(el.Type) && (s.Decoration.Style != domain.DecorationNone || s.Enhancement.Effect != "") {
		detail(readabilityLine)
	}
	return strings.Join(lines, "\n")
}

func constraintsSection(g domain.GlobalSetting) string {
	lines := []string{
		"Key constraints:",
		"- Do not substantially change the original layout; only fine-tune element positions for visual balance",
		"- Keep all original text content unchanged",
		"- Raise the visual refinement of the original so the image is more eye-catching",
		fmt.Sprintf("- Keep decoration density at %d%% (0 = almost no decoration, 100 = heavy decoration)", g.DecorationDensity),
		fmt.Sprintf("- Overall refinement %d%% (0 = plain and simple, 100 = highly polished)", g.OverallRefinement),
		preservationLine,
		"- Output a high-resolution image suited to social media",
	}
	return strings.Join(lines, "\n")
}

// BuildElementPrompt compiles the redesign instruction for a post image.
// Elements are rendered in canonical type order; an element without a setting
// is skipped, as is any setting whose element is not in the analysis.
// Ranges are assumed to be validated by the caller.
func BuildElementPrompt(analysis domain.AnalysisResult, settings []domain.ElementSetting, global domain.GlobalSetting) string {
	byID := make(map[string]domain.ElementSetting, len(settings))
	for _, s := range settings {
		if _, seen := byID[s.ElementID]; !seen {
			byID[s.ElementID] = s
		}
	}

	sections := []string{
		overallSection(analysis, global),
		sectionSeparator + "\n" + elementHeader,
	}
	for _, el := range element.Sort(analysis.Elements) {
		s, ok := byID[el.ID]
		if !ok {
			continue
		}
		sections = append(sections, elementBlock(el, s))
	}
	sections = append(sections, sectionSeparator, constraintsSection(global))
	return strings.Join(sections, "\n\n")
}

// Unresolved returns the ids of settings that reference no element of the
// analysis, in settings order. BuildElementPrompt ignores these.
func Unresolved(analysis domain.AnalysisResult, settings []domain.ElementSetting) []string {
	known := make(map[string]struct{}, len(analysis.Elements))
	for _, el := range analysis.Elements {
		known[el.ID] = struct{}{}
	}
	var ids []string
	for _, s := range settings {
		if _, ok := known[s.ElementID]; !ok {
			ids = append(ids, s.ElementID)
		}
	}
	return ids
}
