package models

import (
	"time"

	"github.com/thenoetrevino/tock/internal/types"
)

// Task is a unit of work owned by exactly one project.
type Task struct {
	ID          types.TaskID    `json:"id" yaml:"id"`
	ProjectID   types.ProjectID `json:"project_id" yaml:"project_id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

func (t Task) GetID() int {
	return t.ID.ToInt()
}
