package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book catalog record. Discount is a percentage (0 means no discount);
// Featured items surface on the storefront.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Genre       string             `bson:"genre" json:"genre"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Discount    float64            `bson:"discount" json:"discount"`
	Featured    bool               `bson:"featured" json:"featured"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookSearchableFields fields the listing endpoint matches searchTerm against.
var BookSearchableFields = []string{"title", "author", "genre"}
