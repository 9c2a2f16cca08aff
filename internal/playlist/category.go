package playlist

// Category groups channels in the playlist. Its ID is derived from the
// display name when the category is created and is immutable afterwards:
// channels reference it as a foreign key, so renaming a category never
// regenerates the ID.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewCategory validates a category draft as submitted by an editor.
// Returns ErrEmptyID or ErrEmptyName when a required field is blank.
func NewCategory(id, name string) (Category, error) {
	if id == "" {
		return Category{}, ErrEmptyID
	}
	if name == "" {
		return Category{}, ErrEmptyName
	}
	return Category{ID: id, Name: name}, nil
}
