package domain

// ProductImageType is one of the fixed product photography categories.
type ProductImageType string

const (
	ProductRender3D    ProductImageType = "render_3d"
	ProductHandHeld    ProductImageType = "hand_held"
	ProductFeature1    ProductImageType = "feature_1"
	ProductFeature2    ProductImageType = "feature_2"
	ProductComparison  ProductImageType = "comparison"
	ProductLifestyle   ProductImageType = "lifestyle"
	ProductInstruction ProductImageType = "instruction"
)

// ProductImageTypeCount is the number of prompts produced per product.
const ProductImageTypeCount = 7

// MaxSellingPoints caps the selling points a user may supply.
const MaxSellingPoints = 3

// ProductImageTypeInfo describes one product image type for display.
type ProductImageTypeInfo struct {
	Type        ProductImageType `json:"type"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Hint        string           `json:"hint"`
}

// ProductImageTypes is the canonical order of product image types.
var ProductImageTypes = [ProductImageTypeCount]ProductImageTypeInfo{
	{
		Type:        ProductRender3D,
		Label:       "3D Render",
		Description: "High-fidelity 3D render of the product that stresses material and lighting",
		Hint:        "Typical use: website hero image, main ad visual",
	},
	{
		Type:        ProductHandHeld,
		Label:       "Hand-held",
		Description: "The product held or used by a person, conveying scale and real usage",
		Hint:        "Typical use: marketplace main image, social carousel",
	},
	{
		Type:        ProductFeature1,
		Label:       "Feature 1",
		Description: "Focus on the first key selling point with room for captions",
		Hint:        "Typical use: product detail page",
	},
	{
		Type:        ProductFeature2,
		Label:       "Feature 2",
		Description: "Focus on the second key selling point from a different angle",
		Hint:        "Typical use: product detail page",
	},
	{
		Type:        ProductComparison,
		Label:       "Comparison",
		Description: "Before/after or versus-alternative contrast that makes the advantage obvious",
		Hint:        "Typical use: persuasive ads, product detail page",
	},
	{
		Type:        ProductLifestyle,
		Label:       "Lifestyle + Model",
		Description: "The product used by a model in a real-life scene",
		Hint:        "Typical use: brand image, social posts",
	},
	{
		Type:        ProductInstruction,
		Label:       "How to Use",
		Description: "Step-by-step usage diagram that shows how to operate the product",
		Hint:        "Typical use: usage tutorial on the detail page",
	},
}

// ProductInfo is the free-text product information supplied by the user.
type ProductInfo struct {
	Name            string   `json:"name"`
	SellingPoints   []string `json:"sellingPoints"`
	TargetAudience  string   `json:"targetAudience"`
	StylePreference string   `json:"stylePreference"`
	AdditionalNotes string   `json:"additionalNotes"`
}

// ProductAnalysis is the validated outcome of one product analysis call.
type ProductAnalysis struct {
	ProductDescription string   `json:"productDescription"`
	Appearance         string   `json:"appearance"`
	Material           string   `json:"material"`
	ColorPalette       []string `json:"colorPalette"`
	InferredUseCase    string   `json:"inferredUseCase"`
	VisualStyle        string   `json:"visualStyle"`
}

type ProductPrompt struct {
	Type   ProductImageType `json:"type"`
	Label  string           `json:"label"`
	Prompt string           `json:"prompt"`
}

// ProductPrompts always holds one prompt per product image type, in canonical order.
type ProductPrompts [ProductImageTypeCount]ProductPrompt
