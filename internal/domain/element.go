package domain

// ElementType enumerates the visual units the analysis service can identify.
type ElementType string

const (
	ElementTitle      ElementType = "title"
	ElementSubtitle   ElementType = "subtitle"
	ElementBodyText   ElementType = "body_text"
	ElementCTAButton  ElementType = "cta_button"
	ElementImage      ElementType = "image"
	ElementIcon       ElementType = "icon"
	ElementDecoration ElementType = "decoration"
	ElementBackground ElementType = "background"
	ElementShape      ElementType = "shape"
	ElementDivider    ElementType = "divider"
)

// ElementTypes lists every recognized element type.
var ElementTypes = []ElementType{
	ElementTitle, ElementSubtitle, ElementBodyText, ElementCTAButton,
	ElementImage, ElementIcon, ElementDecoration,
	ElementBackground, ElementShape, ElementDivider,
}

// Area is the coarse zone of the composition an element occupies.
type Area string

const (
	AreaTop    Area = "top"
	AreaCenter Area = "center"
	AreaBottom Area = "bottom"
	AreaLeft   Area = "left"
	AreaRight  Area = "right"
	AreaFull   Area = "full"
)

var Areas = []Area{AreaTop, AreaCenter, AreaBottom, AreaLeft, AreaRight, AreaFull}

// Layer is the stacking layer an element sits on.
type Layer string

const (
	LayerForeground Layer = "foreground"
	LayerBackground Layer = "background"
	LayerOverlay    Layer = "overlay"
)

var Layers = []Layer{LayerForeground, LayerBackground, LayerOverlay}

type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
	FontSizeXLarge FontSize = "xlarge"
)

var FontSizes = []FontSize{FontSizeSmall, FontSizeMedium, FontSizeLarge, FontSizeXLarge}

type FontWeight string

const (
	FontWeightLight     FontWeight = "light"
	FontWeightRegular   FontWeight = "regular"
	FontWeightBold      FontWeight = "bold"
	FontWeightExtraBold FontWeight = "extra-bold"
)

var FontWeights = []FontWeight{FontWeightLight, FontWeightRegular, FontWeightBold, FontWeightExtraBold}

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight}

// Position locates an element inside the composition.
type Position struct {
	Area  Area  `json:"area"`
	Layer Layer `json:"layer"`
}

// ElementStyle is the existing style the analysis detected for an element.
type ElementStyle struct {
	FontSize   FontSize   `json:"fontSize"`
	FontWeight FontWeight `json:"fontWeight"`
	Color      string     `json:"color"`
	Alignment  Alignment  `json:"alignment"`
}

// AnalyzedElement is one discrete visual unit identified within an analyzed image.
type AnalyzedElement struct {
	ID          string       `json:"id"`
	Type        ElementType  `json:"type"`
	Content     string       `json:"content"`
	Position    Position     `json:"position"`
	Style       ElementStyle `json:"style"`
	Suggestions []string     `json:"suggestions"`
}

// AnalysisResult is the validated outcome of one image analysis call.
type AnalysisResult struct {
	OverallDescription string            `json:"overallDescription"`
	AspectRatio        string            `json:"aspectRatio"`
	DominantColors     []string          `json:"dominantColors"`
	CurrentMood        string            `json:"currentMood"`
	Elements           []AnalyzedElement `json:"elements"`
	LayoutDescription  string            `json:"layoutDescription"`
}

// Element returns the first element with the given id.
func (r AnalysisResult) Element(id string) (AnalyzedElement, bool) {
	for _, el := range r.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return AnalyzedElement{}, false
}

// Valid reports whether t is one of the recognized element types.
func (t ElementType) Valid() bool { return contains(ElementTypes, t) }

func (a Area) Valid() bool       { return contains(Areas, a) }
func (l Layer) Valid() bool      { return contains(Layers, l) }
func (f FontSize) Valid() bool   { return contains(FontSizes, f) }
func (f FontWeight) Valid() bool { return contains(FontWeights, f) }
func (a Alignment) Valid() bool  { return contains(Alignments, a) }

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Strings converts an enum list to its raw values, in order.
func Strings[T ~string](list []T) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}
