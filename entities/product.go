package entities

import "github.com/google/uuid"

// Product is identified by a surrogate UUID in the CRUD API, while the
// supply protocol correlates on Name (the business key of a product line).
type Product struct {
	ID          uuid.UUID `json:"id" db:"product_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

type Availability struct {
	Available bool `json:"available"`
}
