package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (titles, selection, running timer)
	Accent string `yaml:"accent"`

	// Semantic colors
	Running string `yaml:"running"`
	Stopped string `yaml:"stopped"`
	Delete  string `yaml:"delete"`

	// UI element colors
	Border     string `yaml:"border"`
	SelectedBg string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors
	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.MergeMissing(*GetPreset(c.Preset))
	if c.Preset == "" {
		c.Preset = "default"
	}
}

// MergeFrom overrides colors with the non-empty values of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	for i, dst := range c.fields() {
		if v := *other.fields()[i]; v != "" {
			*dst = v
		}
	}
}

// MergeMissing fills only the empty colors from base
func (c *ColorScheme) MergeMissing(base ColorScheme) {
	for i, dst := range c.fields() {
		if *dst == "" {
			*dst = *base.fields()[i]
		}
	}
}

func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Preset,
		&c.Accent,
		&c.Running, &c.Stopped, &c.Delete,
		&c.Border, &c.SelectedBg,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.WarningFg, &c.ErrorFg,
	}
}
