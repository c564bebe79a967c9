package model

// Item represents a single stock record.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

// ItemCreate is the payload for creating an item.
// Pointer fields distinguish "absent" from zero values so that
// validation can report every missing field.
type ItemCreate struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Stock *int64  `json:"stock"`
}

// ItemUpdate is the payload for a partial update. Absent fields
// leave the stored value unchanged.
type ItemUpdate struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Stock *int64  `json:"stock"`
}
