package config

// KeyMappings defines the configurable key bindings of the interactive session
type KeyMappings struct {
	// Timer
	Start string `yaml:"start"`
	Stop  string `yaml:"stop"`

	// Entries
	NextEntry   string `yaml:"next_entry"`
	PrevEntry   string `yaml:"prev_entry"`
	DeleteEntry string `yaml:"delete_entry"`

	// Days
	PrevDay  string `yaml:"prev_day"`
	NextDay  string `yaml:"next_day"`
	PrevWeek string `yaml:"prev_week"`
	NextWeek string `yaml:"next_week"`
	Today    string `yaml:"today"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Start: "s",
		Stop:  "x",

		NextEntry:   "j",
		PrevEntry:   "k",
		DeleteEntry: "d",

		PrevDay:  "h",
		NextDay:  "l",
		PrevWeek: "[",
		NextWeek: "]",
		Today:    "t",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Start, defaults.Start)
	fill(&k.Stop, defaults.Stop)
	fill(&k.NextEntry, defaults.NextEntry)
	fill(&k.PrevEntry, defaults.PrevEntry)
	fill(&k.DeleteEntry, defaults.DeleteEntry)
	fill(&k.PrevDay, defaults.PrevDay)
	fill(&k.NextDay, defaults.NextDay)
	fill(&k.PrevWeek, defaults.PrevWeek)
	fill(&k.NextWeek, defaults.NextWeek)
	fill(&k.Today, defaults.Today)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
