package gemini

import (
	_ "embed"
	"strings"
	"text/template"

	"postcraft/internal/domain"
)

var (
	//go:embed instructions/analysis.txt
	analysisInstruction string

	//go:embed instructions/product.txt
	productInstructionText string

	productInstruction = template.Must(template.New("product").Parse(productInstructionText))
)

type productInstructionData struct {
	Name            string
	SellingPoints   string
	TargetAudience  string
	StylePreference string
	AdditionalNotes string
}

// ProductInstruction renders the product analysis instruction for info.
// Blank fields are shown as not provided.
func ProductInstruction(info domain.ProductInfo) (string, error) {
	var points []string
	for _, sp := range info.SellingPoints {
		if sp = strings.TrimSpace(sp); sp != "" {
			points = append(points, sp)
		}
	}
	data := productInstructionData{
		Name:            strings.TrimSpace(info.Name),
		SellingPoints:   strings.Join(points, ", "),
		TargetAudience:  strings.TrimSpace(info.TargetAudience),
		StylePreference: strings.TrimSpace(info.StylePreference),
		AdditionalNotes: strings.TrimSpace(info.AdditionalNotes),
	}
	var b strings.Builder
	if err := productInstruction.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
