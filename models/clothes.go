package models

import (
	"time"

	"github.com/go-playground/validator"
)

type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOnePiece  Category = "one_piece" // dresses, jumpsuits: covers top and bottom
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategoryBag       Category = "bag"
	CategoryAccessory Category = "accessory"

	// CategoryAll is a filter value only, never stored on an item.
	CategoryAll Category = "all"
)

// Categories is the closed taxonomy in display order.
var Categories = []Category{
	CategoryTop,
	CategoryBottom,
	CategoryOnePiece,
	CategoryOuterwear,
	CategoryShoes,
	CategoryBag,
	CategoryAccessory,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ValidateCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}

// ValidateCategoryFilter accepts the taxonomy plus "all" and the empty string.
func ValidateCategoryFilter(fl validator.FieldLevel) bool {
	value := Category(fl.Field().String())
	return value == "" || value == CategoryAll || value.Valid()
}

// Item is a wardrobe piece. ID and CreatedAt are set once by the repository.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Image     *string   `json:"image,omitempty"` // opaque encoded payload (data URL)
	CreatedAt time.Time `json:"createdAt"`
}

func (i Item) HasImage() bool {
	return i.Image != nil && *i.Image != ""
}

// Clone returns a copy that shares no pointers with i.
func (i Item) Clone() Item {
	if i.Image != nil {
		image := *i.Image
		i.Image = &image
	}
	return i
}
