package huhforms

import (
	"strings"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/tock/internal/models"
)

// ProjectForm asks for a project name and description
func ProjectForm(name, description *string, confirm *bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Project Name").
			Placeholder("e.g. website").
			Validate(notBlank).
			Value(name),

		huh.NewText().
			Key("description").
			Title("Description (optional)").
			CharLimit(500).
			Lines(3).
			Value(description),

		huh.NewConfirm().
			Key("confirm").
			Title("Create this project?").
			Affirmative("Yes").
			Negative("No").
			Value(confirm),
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithKeyMap(CreateKeyMapWithShiftEnter())
}

// TaskForm asks for the project, name and description of a task.
// projectID must point at one of the given projects or zero.
func TaskForm(projects []models.Project, projectID *int, name, description *string) *huh.Form {
	options := make([]huh.Option[int], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(p.Name, p.ID.ToInt()))
	}

	fields := []huh.Field{
		huh.NewSelect[int]().
			Key("project").
			Title("Project").
			Options(options...).
			Value(projectID),

		huh.NewInput().
			Key("name").
			Title("Task Name").
			Validate(notBlank).
			Value(name),

		huh.NewText().
			Key("description").
			Title("Description (optional)").
			CharLimit(500).
			Lines(3).
			Value(description),
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithKeyMap(CreateKeyMapWithShiftEnter())
}

// ConfirmDeleteForm asks a yes/no question, defaulting to no
func ConfirmDeleteForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(confirmed),
	)).WithKeyMap(CreateKeyMapWithShiftEnter())
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return models.ErrEmptyName
	}
	return nil
}
