package types

import "time"

// Variant is a purchasable configuration of a product carrying its own
// price and stock.
type Variant struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	Color string  `json:"color,omitempty" bson:"color,omitempty"`
	Price float64 `json:"price" bson:"price"`
	Stock int     `json:"stock" bson:"stock"`
}

type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Brand     string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Model     string    `json:"model,omitempty" bson:"model,omitempty"`
	Material  string    `json:"material,omitempty" bson:"material,omitempty"`
	Images    []string  `json:"images,omitempty" bson:"images,omitempty"`
	Variants  []Variant `json:"variants,omitempty" bson:"variants,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Collection is a theme gallery (e.g. "Anime", "Marvel") addressed by
// its URL handle.
type Collection struct {
	ID          string    `json:"id" bson:"_id"`
	Handle      string    `json:"handle" bson:"handle"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// MobileCompany is one entry of the phone company/model catalog used by
// the customizer to pick a cover size.
type MobileCompany struct {
	Name   string   `json:"name" bson:"_id"`
	Models []string `json:"models" bson:"models"`
}
