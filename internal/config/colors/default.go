package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Running: "#5FD75F",
		Stopped: "#5F87D7",
		Delete:  "#FF0000",

		Border:     "#585858",
		SelectedBg: "#3A3A3A",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		WarningFg: "#FFD700",
		ErrorFg:   "#FF0000",
	}
}
