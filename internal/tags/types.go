package tags

import "github.com/google/uuid"

// TagDTO is the public projection of a tag.
type TagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
