package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Running: "#FFFFFF",
		Stopped: "#D0D0D0",
		Delete:  "#FFFFFF",

		Border:     "#585858",
		SelectedBg: "#3A3A3A",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		WarningFg: "#FFFFFF",
		ErrorFg:   "#FFFFFF",
	}
}
