package domain

// Store is the root of the catalog ownership tree.
// A store owns items and tags; both reference it by StoreID.
type Store struct {
	Entity
	Name string `json:"name"`
}

// Item is a product belonging to exactly one store.
// Items participate in a many-to-many relation with tags via the
// tag_items join table.
type Item struct {
	Entity
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	StoreID string  `json:"store_id"`
}

// Tag is a label scoped to a single store.
// Tag names are unique per store, and a tag may only be linked to items
// of the same store.
type Tag struct {
	Entity
	Name    string `json:"name"`
	StoreID string `json:"store_id"`
}
