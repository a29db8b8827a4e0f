package user

import (
	"testing"
)

func TestGetCurrentUsername(t *testing.T) {
	if username := GetCurrentUsername(); username == "" {
		t.Error("GetCurrentUsername() should never return an empty string")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Name != GetCurrentUsername() {
		t.Errorf("DefaultSettings().Name = %q, want %q", s.Name, GetCurrentUsername())
	}
	if s.Email != "" {
		t.Errorf("DefaultSettings().Email = %q, want empty", s.Email)
	}
}
