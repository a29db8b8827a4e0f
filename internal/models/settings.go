package models

// Settings holds the user details shown on reports.
type Settings struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}
