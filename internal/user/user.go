package user

import (
	"os"
	"os/user"

	"github.com/thenoetrevino/tock/internal/models"
)

// GetCurrentUsername returns the current system username.
// Falls back to $USER, then "unknown", so the result is never empty.
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		if username := os.Getenv("USER"); username != "" {
			return username
		}
		return "unknown"
	}
	return currentUser.Username
}

// DefaultSettings names the session after the OS user
func DefaultSettings() models.Settings {
	return models.Settings{Name: GetCurrentUsername()}
}
