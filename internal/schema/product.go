package schema

import (
	"postcraft/internal/domain"
)

// ParseProductAnalysis decodes raw JSON and validates it as a ProductAnalysis.
func ParseProductAnalysis(data []byte) (domain.ProductAnalysis, error) {
	raw, err := decode(data, "product analysis")
	if err != nil {
		return domain.ProductAnalysis{}, err
	}
	return ValidateProductAnalysis(raw)
}

// ValidateProductAnalysis validates an already decoded JSON document.
func ValidateProductAnalysis(raw any) (domain.ProductAnalysis, error) {
	c := &checker{}
	m, ok := c.object("", raw)
	if !ok {
		return domain.ProductAnalysis{}, c.err("product analysis")
	}
	out := domain.ProductAnalysis{
		ProductDescription: c.str(m, "", "productDescription"),
		Appearance:         c.str(m, "", "appearance"),
		Material:           c.str(m, "", "material"),
		ColorPalette:       c.stringList(m, "", "colorPalette"),
		InferredUseCase:    c.str(m, "", "inferredUseCase"),
		VisualStyle:        c.str(m, "", "visualStyle"),
	}
	if err := c.err("product analysis"); err != nil {
		return domain.ProductAnalysis{}, err
	}
	return out, nil
}

// ParseProductInfo decodes user supplied product information. Every field is
// optional free text, but present fields must have the right kind and at most
// three selling points are accepted.
func ParseProductInfo(data []byte) (domain.ProductInfo, error) {
	raw, err := decode(data, "product info")
	if err != nil {
		return domain.ProductInfo{}, err
	}
	return ValidateProductInfo(raw)
}

func ValidateProductInfo(raw any) (domain.ProductInfo, error) {
	c := &checker{}
	m, ok := c.object("", raw)
	if !ok {
		return domain.ProductInfo{}, c.err("product info")
	}
	optional := func(key string) string {
		if _, ok := m[key]; !ok {
			return ""
		}
		return c.str(m, "", key)
	}
	out := domain.ProductInfo{
		Name:            optional("name"),
		TargetAudience:  optional("targetAudience"),
		StylePreference: optional("stylePreference"),
		AdditionalNotes: optional("additionalNotes"),
	}
	if _, ok := m["sellingPoints"]; ok {
		out.SellingPoints = c.stringList(m, "", "sellingPoints")
		if len(out.SellingPoints) > domain.MaxSellingPoints {
			c.fail("sellingPoints", "at most %d selling points are allowed, got %d", domain.MaxSellingPoints, len(out.SellingPoints))
		}
	}
	if err := c.err("product info"); err != nil {
		return domain.ProductInfo{}, err
	}
	return out, nil
}
