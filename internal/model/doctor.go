package model

import "github.com/google/uuid"

// Doctor is a directory record. The broker never mutates it; eligibility
// requires an active record, a push token and the requested language.
type Doctor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Languages []string  `json:"languages,omitempty"`
	IsActive  bool      `json:"is_active"`
	PushToken string    `json:"-"`
}

// Eligible reports whether the doctor may be offered a call in lang.
func (d Doctor) Eligible(lang string) bool {
	if !d.IsActive || d.PushToken == "" {
		return false
	}
	for _, l := range d.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
