package games

// CreateGamePayload is the payload for adding a game to the catalog.
type CreateGamePayload struct {
	Title       string  `json:"title" mod:"trim" validate:"required,max=300"`
	Genre       string  `json:"genre" mod:"trim,lcase" validate:"required,max=100"`
	Platform    string  `json:"platform" mod:"trim,lcase" validate:"required,max=100"`
	ReleaseDate string  `json:"release_date" validate:"required,date"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateGamePayload is the payload for updating a game's metadata.
type UpdateGamePayload struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Platform    *string `json:"platform,omitempty" validate:"omitempty,max=100"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,date,ne="`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
