package domain

// TemplatePreview carries the three swatch colors shown for a template.
type TemplatePreview struct {
	PrimaryColor   string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondaryColor"`
	AccentColor    string `json:"accentColor" yaml:"accentColor"`
}

// ElementDefault is the partial setting a template defines for one element type.
// A nil part means the template says nothing about it.
type ElementDefault struct {
	Decoration  *DecorationPatch  `json:"decoration,omitempty" yaml:"decoration,omitempty"`
	Enhancement *EnhancementPatch `json:"enhancement,omitempty" yaml:"enhancement,omitempty"`
}

type TemplateDefaults struct {
	GlobalSetting   GlobalSetting                  `json:"globalSetting" yaml:"globalSetting"`
	ElementDefaults map[ElementType]ElementDefault `json:"elementDefaults" yaml:"elementDefaults"`
}

// StyleTemplate is a named bundle of default style choices.
type StyleTemplate struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Preview     TemplatePreview  `json:"preview" yaml:"preview"`
	Defaults    TemplateDefaults `json:"defaults" yaml:"defaults"`
}
