package gemini

import (
	"google.golang.org/genai"

	"postcraft/internal/domain"
)

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func enumOf(values []string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: values}
}

func strList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
}

// analysisSchema mirrors the payload schema.ValidateAnalysis accepts.
func analysisSchema() *genai.Schema {
	elementSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":      str("unique id in the form type_number"),
			"type":    enumOf(domain.Strings(domain.ElementTypes)),
			"content": str(""),
			"position": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"area":  enumOf(domain.Strings(domain.Areas)),
					"layer": enumOf(domain.Strings(domain.Layers)),
				},
				Required: []string{"area", "layer"},
			},
			"style": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"fontSize":   enumOf(domain.Strings(domain.FontSizes)),
					"fontWeight": enumOf(domain.Strings(domain.FontWeights)),
					"color":      str(""),
					"alignment":  enumOf(domain.Strings(domain.Alignments)),
				},
				Required: []string{"fontSize", "fontWeight", "color", "alignment"},
			},
			"suggestions": strList(""),
		},
		Required: []string{"id", "type", "content", "position", "style", "suggestions"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overallDescription": str("overall description of the image, under 50 words"),
			"aspectRatio":        str("for example 1:1, 4:5, 16:9"),
			"dominantColors":     strList("3-5 dominant colors"),
			"currentMood":        str("assessment of the current overall style"),
			"elements":           {Type: genai.TypeArray, Items: elementSchema},
			"layoutDescription":  str(""),
		},
		Required: []string{"overallDescription", "aspectRatio", "dominantColors", "currentMood", "elements", "layoutDescription"},
	}
}

func productSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"productDescription": str("overall product description, under 50 words"),
			"appearance":         str("shape, structure and sense of size"),
			"material":           str("material or surface finish, such as brushed metal, matte plastic, fabric"),
			"colorPalette":       strList("2-4 main product colors"),
			"inferredUseCase":    str("likely usage scenario and audience"),
			"visualStyle":        str("suggested visual style, such as tech, natural, luxury"),
		},
		Required: []string{"productDescription", "appearance", "material", "colorPalette", "inferredUseCase", "visualStyle"},
	}
}
