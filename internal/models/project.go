package models

import (
	"time"

	"github.com/thenoetrevino/tock/internal/types"
)

// Project groups tasks and time entries under a name.
type Project struct {
	ID          types.ProjectID `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

// GetID satisfies the quiet-mode ID printer in the CLI
func (p Project) GetID() int {
	return p.ID.ToInt()
}
