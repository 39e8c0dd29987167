package models

import (
	"maps"

	"github.com/go-playground/validator"
)

type SlotKey string

const (
	SlotTop       SlotKey = "top"
	SlotBottom    SlotKey = "bottom"
	SlotOuterwear SlotKey = "outerwear"
	SlotShoes     SlotKey = "shoes"
	SlotBag       SlotKey = "bag"
	SlotAccessory SlotKey = "accessory"
)

// SlotKeys lists the six outfit slots in their fixed order. Selected ids are
// always reported in this order.
var SlotKeys = [...]SlotKey{SlotTop, SlotBottom, SlotOuterwear, SlotShoes, SlotBag, SlotAccessory}

func (k SlotKey) Valid() bool {
	for _, known := range SlotKeys {
		if k == known {
			return true
		}
	}
	return false
}

func ValidateSlot(fl validator.FieldLevel) bool {
	return SlotKey(fl.Field().String()).Valid()
}

// categorySlots must cover every entry of Categories.
var categorySlots = map[Category]SlotKey{
	CategoryTop:       SlotTop,
	CategoryBottom:    SlotBottom,
	CategoryOnePiece:  SlotTop,
	CategoryOuterwear: SlotOuterwear,
	CategoryShoes:     SlotShoes,
	CategoryBag:       SlotBag,
	CategoryAccessory: SlotAccessory,
}

// Slot returns the default slot for the category. Unknown categories land in
// the accessory slot.
func (c Category) Slot() SlotKey {
	if slot, ok := categorySlots[c]; ok {
		return slot
	}
	return SlotAccessory
}

// Slots maps a slot to the id of the item occupying it. A missing key or an
// empty value is an empty slot.
type Slots map[SlotKey]string

// ItemIDs returns the occupied slot values in slot order.
func (s Slots) ItemIDs() []string {
	ids := make([]string, 0, len(SlotKeys))
	for _, key := range SlotKeys {
		if id := s[key]; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SlotOf reports which slot holds id.
func (s Slots) SlotOf(id string) (SlotKey, bool) {
	if id == "" {
		return "", false
	}
	for _, key := range SlotKeys {
		if s[key] == id {
			return key, true
		}
	}
	return "", false
}

func (s Slots) Empty() bool {
	return len(s.ItemIDs()) == 0
}

// Clone returns a copy without empty entries.
func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	out := make(Slots, len(s))
	maps.Copy(out, s)
	maps.DeleteFunc(out, func(_ SlotKey, id string) bool { return id == "" })
	return out
}
