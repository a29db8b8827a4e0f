package huhforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tock/internal/config/colors"
	"github.com/thenoetrevino/tock/internal/models"
)

func TestNotBlank(t *testing.T) {
	assert.ErrorIs(t, notBlank(""), models.ErrEmptyName)
	assert.ErrorIs(t, notBlank("   "), models.ErrEmptyName)
	assert.NoError(t, notBlank("website"))
}

func TestKeyMap_EscQuits(t *testing.T) {
	km := CreateKeyMapWithShiftEnter()
	assert.Contains(t, km.Quit.Keys(), "esc")
	assert.Contains(t, km.Text.NewLine.Keys(), "shift+enter")
}

func TestForms_Build(t *testing.T) {
	var name, description string
	var confirm bool
	var projectID int

	theme := Theme(*colors.Default())
	assert.NotNil(t, ProjectForm(&name, &description, &confirm).WithTheme(theme))
	assert.NotNil(t, TaskForm([]models.Project{{ID: 1, Name: "web"}}, &projectID, &name, &description))
	assert.NotNil(t, ConfirmDeleteForm("Delete entry 3?", &confirm))
}
