package models

import "aquabio-be/internal/entities"

// BiotaResponse wraps a mutated entry together with a human message,
// mirroring the shape the frontend expects.
type BiotaResponse struct {
	Message string               `json:"message"`
	Biota   *entities.BiotaEntry `json:"biota"`
}
