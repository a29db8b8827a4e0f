package theme

import "github.com/thenoetrevino/tock/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Accent     string
	Running    string
	Stopped    string
	Delete     string
	Border     string
	SelectedBg string
	Title      string
	Subtle     string
	Normal     string
	InfoFg     string
	WarningFg  string
	ErrorFg    string
)

func init() {
	Init(*colors.Default())
}

// Init initializes the theme colors from the given color scheme
func Init(scheme colors.ColorScheme) {
	Accent = scheme.Accent
	Running = scheme.Running
	Stopped = scheme.Stopped
	Delete = scheme.Delete
	Border = scheme.Border
	SelectedBg = scheme.SelectedBg
	Title = scheme.Title
	Subtle = scheme.Subtle
	Normal = scheme.Normal
	InfoFg = scheme.InfoFg
	WarningFg = scheme.WarningFg
	ErrorFg = scheme.ErrorFg
}
