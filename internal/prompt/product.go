package prompt

import (
	"fmt"
	"strings"

	"postcraft/internal/domain"
)

const (
	genericFeature   = "core feature"
	genericAdvantage = "product advantage"
	clipboardDivider = "\n\n---\n\n"
)

// product resolves the fallback chains shared by every builder.
type product struct {
	name       string
	audience   string
	persona    string
	style      string
	appearance string
	material   string
	points     []string
	analysis   domain.ProductAnalysis
	palette    string
	firstTone  string
}

func resolve(info domain.ProductInfo, a domain.ProductAnalysis) product {
	p := product{
		name:       firstNonBlank(info.Name, a.ProductDescription, "the product"),
		audience:   firstNonBlank(info.TargetAudience, a.InferredUseCase, "everyday consumers"),
		persona:    persona(info.TargetAudience, a.InferredUseCase),
		style:      firstNonBlank(info.StylePreference, a.VisualStyle, "clean commercial"),
		appearance: firstNonBlank(a.Appearance, "clean, well-proportioned form"),
		material:   firstNonBlank(a.Material, "quality materials"),
		analysis:   a,
	}
	for _, sp := range info.SellingPoints {
		if sp = strings.TrimSpace(sp); sp != "" {
			p.points = append(p.points, sp)
		}
	}
	p.palette = strings.Join(nonBlank(a.ColorPalette), ", ")
	if p.palette == "" {
		p.palette = "neutral tones"
	}
	p.firstTone = paletteAt(a.ColorPalette, 0, "neutral")
	return p
}

// persona describes the person shown with the product. A stated audience reads
// "a person from the students audience"; a use case reads "a daily commute user".
func persona(audience, useCase string) string {
	if a := strings.TrimSpace(audience); a != "" {
		return "a person from the " + a + " audience"
	}
	if u := strings.TrimSpace(useCase); u != "" {
		return article(u) + " " + u + " user"
	}
	return "an everyday consumer"
}

func article(word string) string {
	if strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		return "an"
	}
	return "a"
}

func (p product) point(i int) string {
	if i < len(p.points) {
		return p.points[i]
	}
	return ""
}

func build3DRender(p product) string {
	return fmt.Sprintf(
		"High-quality 3D product render of %s, %s, made of %s, color palette: %s. "+
			"Studio lighting with soft shadows, 45-degree camera angle, clean white or gradient background, "+
			"ultra-detailed surface texture, photorealistic rendering, %s aesthetic, "+
			"commercial product photography style, 8K resolution, no text overlay.",
		p.name, p.appearance, p.material, p.palette, p.style)
}

func buildHandHeld(p product) string {
	return fmt.Sprintf(
		"Close-up of %s holding %s (%s, made of %s, %s color) in their hand, natural lifestyle setting, "+
			"soft natural lighting, shallow depth of field, product clearly visible and in focus, "+
			"authentic and relatable mood, the grip shows the product's scale and ease of use, "+
			"%s style, no text, cinematic composition.",
		p.persona, p.name, p.appearance, p.material, p.firstTone, p.style)
}

func buildFeature1(p product) string {
	point := firstNonBlank(p.point(0), genericFeature)
	return fmt.Sprintf(
		"Product feature highlight image for the \"%s\" of %s. Close-up shot of the key detail of its %s, "+
			"made of %s. Clean minimal background in %s tones, using the palette %s, dramatic lighting that emphasizes the feature, "+
			"composition with empty space on the left or right for later labels, %s visual style, "+
			"high contrast, professional commercial photography.",
		point, p.name, p.appearance, p.material, p.firstTone, p.palette, p.style)
}

func buildFeature2(p product) string {
	point := firstNonBlank(p.point(1), p.point(0), genericAdvantage)
	return fmt.Sprintf(
		"Product feature highlight image for the \"%s\" of %s (%s). A different angle from the first feature shot, "+
			"showing the texture of its %s up close. Complementary background drawn from the palette %s, "+
			"split composition with the product on one side and annotation space on the other, %s aesthetic, "+
			"creative lighting, ultra sharp focus on the highlighted area.",
		point, p.name, p.appearance, p.material, p.palette, p.style)
}

func buildComparison(p product) string {
	advantage := firstNonBlank(p.point(0), genericAdvantage)
	return fmt.Sprintf(
		"Side-by-side before/after comparison image for %s. The left half shows the \"before\" state: "+
			"a generic, dimmer, less refined alternative. The right half shows the \"after\" state: %s delivering its %s, "+
			"shown with %s, made of %s, in %s color. Clean split layout with a centered dividing line and clear visual contrast, "+
			"palette %s, %s design style, persuasive advertising composition, no clutter, no rendered text.",
		p.name, p.name, advantage, p.appearance, p.material, p.firstTone, p.palette, p.style)
}

func buildLifestyle(p product) string {
	scene := "in an everyday setting"
	if uc := strings.TrimSpace(p.analysis.InferredUseCase); uc != "" {
		scene = "during " + uc
	}
	return fmt.Sprintf(
		"Lifestyle photography of a model portraying %s, using %s %s. "+
			"The model interacts naturally with the product (%s, made of %s) with a genuine, relatable expression, "+
			"golden hour or soft studio lighting, the environment matches the %s brand aesthetic with %s color tones, "+
			"editorial photography style, full or three-quarter body shot, product prominent but not forced, "+
			"aspirational yet authentic mood.",
		p.persona, p.name, scene, p.appearance, p.material, p.style, p.palette)
}

func buildInstruction(p product) string {
	return fmt.Sprintf(
		"Step-by-step usage graphic for %s. 3 to 4 numbered steps in a clean grid or horizontal layout, "+
			"each step showing the product (%s, made of %s) in a different usage position, "+
			"flat lay or slight isometric angle, minimal %s and %s background drawn from the palette %s, "+
			"step numbers shown as icons, generous empty space reserved for captions added later, "+
			"%s design style, infographic layout, no actual text rendered.",
		p.name, p.appearance, p.material,
		paletteAt(p.analysis.ColorPalette, 0, "white"), paletteAt(p.analysis.ColorPalette, 1, "light grey"),
		p.palette, p.style)
}

var builders = [domain.ProductImageTypeCount]func(product) string{
	build3DRender,
	buildHandHeld,
	buildFeature1,
	buildFeature2,
	buildComparison,
	buildLifestyle,
	buildInstruction,
}

// BuildProductPrompts produces one prompt per product image type, in
// canonical order. Blank info fields fall back to analysis data and then to
// generic descriptors, so no prompt is ever empty.
func BuildProductPrompts(info domain.ProductInfo, analysis domain.ProductAnalysis) domain.ProductPrompts {
	p := resolve(info, analysis)
	var out domain.ProductPrompts
	for i, t := range domain.ProductImageTypes {
		out[i] = domain.ProductPrompt{
			Type:   t.Type,
			Label:  t.Label,
			Prompt: builders[i](p),
		}
	}
	return out
}

// ProductBaseContext is the one-line product summary shared by the prompts.
func ProductBaseContext(info domain.ProductInfo, analysis domain.ProductAnalysis) string {
	p := resolve(info, analysis)
	parts := []string{
		"Product: " + p.name,
		"Appearance: " + p.appearance,
		"Material: " + p.material,
		"Main colors: " + p.palette,
	}
	if len(p.points) > 0 {
		parts = append(parts, "Key selling points: "+strings.Join(p.points, ", "))
	}
	parts = append(parts, "Target audience: "+p.audience)
	return strings.Join(parts, "; ")
}

// ConcatenateForClipboard renders all prompts as numbered blocks for a single copy action.
func ConcatenateForClipboard(prompts domain.ProductPrompts) string {
	blocks := make([]string, 0, len(prompts))
	for i, p := range prompts {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s", i+1, p.Label, p.Prompt))
	}
	return strings.Join(blocks, clipboardDivider)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func paletteAt(palette []string, i int, fallback string) string {
	colors := nonBlank(palette)
	if i < len(colors) {
		return colors[i]
	}
	return fallback
}
