package languageutil

import (
	"strings"

	"atelierapi/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Folder is stateless and shared. Title and upper casers are stateful, so
// they are built per call.
var Folder = cases.Fold()

func title(s string) string { return cases.Title(language.English).String(s) }
func upper(s string) string { return cases.Upper(language.English).String(s) }

var categoryLabels = map[models.Category]string{
	models.CategoryAll:       "All",
	models.CategoryTop:       "Tops",
	models.CategoryBottom:    "Bottoms",
	models.CategoryOnePiece:  "Dresses",
	models.CategoryOuterwear: "Outerwear",
	models.CategoryShoes:     "Shoes",
	models.CategoryBag:       "Bags",
	models.CategoryAccessory: "Acc.",
}

var slotLabels = map[models.SlotKey]string{
	models.SlotTop:       "Top / Dress",
	models.SlotBottom:    "Bottom",
	models.SlotOuterwear: "Outerwear",
	models.SlotShoes:     "Shoes",
	models.SlotBag:       "Bag",
	models.SlotAccessory: "Accessory",
}

// ContainsFold reports whether term occurs in s ignoring case. An empty term
// matches everything.
func ContainsFold(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(Folder.String(s), Folder.String(term))
}

func CategoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return upper(string(c))
}

// CategoryBadge is the upper-cased label shown on pieces without an image.
func CategoryBadge(c models.Category) string {
	return upper(CategoryLabel(c))
}

func SlotLabel(k models.SlotKey) string {
	if label, ok := slotLabels[k]; ok {
		return label
	}
	return title(string(k))
}

func VibeLabel(v models.Vibe) string {
	return title(string(v))
}
