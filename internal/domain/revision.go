package domain

import "time"

// Revision is one saved state of a figure file, as kept by the history journal
type Revision struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	Format  string    `json:"format"`
	Figure  Figure    `json:"figure"`
	Digest  string    `json:"digest"` // hex BLAKE2b-256 of the bytes written
	SavedAt time.Time `json:"saved_at"`
}
