package domain

import "fmt"

// DecorationStyle is the decorative treatment requested for an element.
type DecorationStyle string

const (
	DecorationNone      DecorationStyle = "none"
	DecorationUnderline DecorationStyle = "underline"
	DecorationOutline   DecorationStyle = "outline"
	DecorationShadow    DecorationStyle = "shadow"
	DecorationGradient  DecorationStyle = "gradient"
	DecorationGlow      DecorationStyle = "glow"
	DecorationBadge     DecorationStyle = "badge"
)

var DecorationStyles = []DecorationStyle{
	DecorationNone, DecorationUnderline, DecorationOutline, DecorationShadow,
	DecorationGradient, DecorationGlow, DecorationBadge,
}

func (s DecorationStyle) Valid() bool { return contains(DecorationStyles, s) }

// Mood is the overall tone applied to the redesigned composition.
type Mood string

const (
	MoodProfessional Mood = "professional"
	MoodPlayful      Mood = "playful"
	MoodElegant      Mood = "elegant"
	MoodBold         Mood = "bold"
	MoodMinimal      Mood = "minimal"
	MoodLuxury       Mood = "luxury"
)

var Moods = []Mood{MoodProfessional, MoodPlayful, MoodElegant, MoodBold, MoodMinimal, MoodLuxury}

func (m Mood) Valid() bool { return contains(Moods, m) }

// ColorScheme is the palette strategy applied to the composition.
type ColorScheme string

const (
	ColorKeepOriginal  ColorScheme = "keep_original"
	ColorMonochrome    ColorScheme = "monochrome"
	ColorComplementary ColorScheme = "complementary"
	ColorAnalogous     ColorScheme = "analogous"
	ColorPastel        ColorScheme = "pastel"
	ColorVibrant       ColorScheme = "vibrant"
)

var ColorSchemes = []ColorScheme{
	ColorKeepOriginal, ColorMonochrome, ColorComplementary,
	ColorAnalogous, ColorPastel, ColorVibrant,
}

func (c ColorScheme) Valid() bool { return contains(ColorSchemes, c) }

const (
	// MinPercent and MaxPercent bound intensity, density and refinement.
	MinPercent = 0
	MaxPercent = 100
	// NeutralIntensity is the decoration intensity of a freshly created setting.
	NeutralIntensity = 50
)

type DecorationSetting struct {
	Style      DecorationStyle `json:"style" yaml:"style"`
	Intensity  int             `json:"intensity" yaml:"intensity"`
	CustomNote string          `json:"customNote" yaml:"customNote"`
}

// EnhancementSetting holds free-text refinements; an empty string means unset.
type EnhancementSetting struct {
	FontSuggestion string `json:"fontSuggestion" yaml:"fontSuggestion"`
	Texture        string `json:"texture" yaml:"texture"`
	Effect         string `json:"effect" yaml:"effect"`
	ColorOverride  string `json:"colorOverride" yaml:"colorOverride"`
}

// ElementSetting is the user's adjustment for a single analyzed element.
type ElementSetting struct {
	ElementID   string             `json:"elementId"`
	Decoration  DecorationSetting  `json:"decoration"`
	Enhancement EnhancementSetting `json:"enhancement"`
}

// GlobalSetting applies to the composition as a whole.
type GlobalSetting struct {
	Mood              Mood        `json:"mood" yaml:"mood"`
	ColorScheme       ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	DecorationDensity int         `json:"decorationDensity" yaml:"decorationDensity"`
	OverallRefinement int         `json:"overallRefinement" yaml:"overallRefinement"`
}

// NeutralSetting returns the untouched setting every element starts with.
func NeutralSetting(elementID string) ElementSetting {
	return ElementSetting{
		ElementID: elementID,
		Decoration: DecorationSetting{
			Style:     DecorationNone,
			Intensity: NeutralIntensity,
		},
	}
}

// BaselineGlobal returns the global setting used when no template is selected.
func BaselineGlobal() GlobalSetting {
	return GlobalSetting{
		Mood:              MoodProfessional,
		ColorScheme:       ColorKeepOriginal,
		DecorationDensity: 50,
		OverallRefinement: 70,
	}
}

// CheckPercent returns ErrInvalidRange when v lies outside [0,100].
func CheckPercent(field string, v int) error {
	if v < MinPercent || v > MaxPercent {
		return fmt.Errorf("%s must be between %d and %d, got %d: %w", field, MinPercent, MaxPercent, v, ErrInvalidRange)
	}
	return nil
}

// Validate checks the decoration enum and intensity range.
func (d DecorationSetting) Validate() error {
	if !d.Style.Valid() {
		return fmt.Errorf("decoration.style %q is not a recognized style: %w", d.Style, ErrSchemaViolation)
	}
	return CheckPercent("decoration.intensity", d.Intensity)
}

// Validate checks the decoration part of the setting; enhancement fields are free text.
func (s ElementSetting) Validate() error {
	return s.Decoration.Validate()
}

// Validate checks the enums and percentage ranges of the global setting.
func (g GlobalSetting) Validate() error {
	if !g.Mood.Valid() {
		return fmt.Errorf("mood %q is not a recognized mood: %w", g.Mood, ErrSchemaViolation)
	}
	if !g.ColorScheme.Valid() {
		return fmt.Errorf("colorScheme %q is not a recognized scheme: %w", g.ColorScheme, ErrSchemaViolation)
	}
	if err := CheckPercent("decorationDensity", g.DecorationDensity); err != nil {
		return err
	}
	return CheckPercent("overallRefinement", g.OverallRefinement)
}

// DecorationPatch is a partial decoration; nil fields leave the target untouched.
type DecorationPatch struct {
	Style      *DecorationStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Intensity  *int             `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	CustomNote *string          `json:"customNote,omitempty" yaml:"customNote,omitempty"`
}

// EnhancementPatch is a partial enhancement; nil fields leave the target untouched.
type EnhancementPatch struct {
	FontSuggestion *string `json:"fontSuggestion,omitempty" yaml:"fontSuggestion,omitempty"`
	Texture        *string `json:"texture,omitempty" yaml:"texture,omitempty"`
	Effect         *string `json:"effect,omitempty" yaml:"effect,omitempty"`
	ColorOverride  *string `json:"colorOverride,omitempty" yaml:"colorOverride,omitempty"`
}

// ApplyTo overlays the defined fields of p onto d.
func (p DecorationPatch) ApplyTo(d DecorationSetting) DecorationSetting {
	if p.Style != nil {
		d.Style = *p.Style
	}
	if p.Intensity != nil {
		d.Intensity = *p.Intensity
	}
	if p.CustomNote != nil {
		d.CustomNote = *p.CustomNote
	}
	return d
}

// ApplyTo overlays the defined fields of p onto e.
func (p EnhancementPatch) ApplyTo(e EnhancementSetting) EnhancementSetting {
	if p.FontSuggestion != nil {
		e.FontSuggestion = *p.FontSuggestion
	}
	if p.Texture != nil {
		e.Texture = *p.Texture
	}
	if p.Effect != nil {
		e.Effect = *p.Effect
	}
	if p.ColorOverride != nil {
		e.ColorOverride = *p.ColorOverride
	}
	return e
}

// Validate checks the patch's style enum and intensity range when present.
func (p DecorationPatch) Validate() error {
	if p.Style != nil && !p.Style.Valid() {
		return fmt.Errorf("decoration.style %q is not a recognized style: %w", *p.Style, ErrSchemaViolation)
	}
	if p.Intensity != nil {
		return CheckPercent("decoration.intensity", *p.Intensity)
	}
	return nil
}
