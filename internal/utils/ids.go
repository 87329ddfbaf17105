package utils

import (
	"github.com/google/uuid"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/store"
)

// ParseID converts an external identifier string into the store's native
// uuid form. Malformed input maps to store.ErrInvalidID so callers can
// treat it as a client error.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, store.ErrInvalidID
	}
	return id, nil
}
