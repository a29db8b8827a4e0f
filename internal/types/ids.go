package types

// ID types give each integer a domain meaning. Identifiers are assigned
// sequentially and never reused within a session.

// EntryID identifies a time entry
type EntryID int

// ProjectID identifies a project
type ProjectID int

// TaskID identifies a task within a project
type TaskID int

// Sentinel keys used when grouping entries by reference.
// Zero means "no reference was given"; negative means "the reference
// points at something that no longer exists".
const (
	NoProject      ProjectID = 0
	UnknownProject ProjectID = -1

	NoTask      TaskID = 0
	UnknownTask TaskID = -1
)

// ToInt converts the ID to a plain int for storage layers
func (id EntryID) ToInt() int {
	return int(id)
}

func (id ProjectID) ToInt() int {
	return int(id)
}

func (id TaskID) ToInt() int {
	return int(id)
}

// IsUnknown reports whether the ID is the dangling-reference sentinel
func (id ProjectID) IsUnknown() bool {
	return id == UnknownProject
}

func (id TaskID) IsUnknown() bool {
	return id == UnknownTask
}

// ProjectRef returns a pointer to a copy of id, for optional references
func ProjectRef(id ProjectID) *ProjectID {
	return &id
}

// TaskRef returns a pointer to a copy of id, for optional references
func TaskRef(id TaskID) *TaskID {
	return &id
}
