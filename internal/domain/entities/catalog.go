package entities

import "encoding/json"

// Catalog is a service catalog carried through bulk import/export.
// Its content is owned by catalog management and kept opaque here.
type Catalog struct {
	Name string          `json:"name" validate:"required"`
	Data json.RawMessage `json:"data" validate:"required"`
}
