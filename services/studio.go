package services

import (
	"context"

	"atelierapi/models"
)

// Draft is the outfit being composed: six exclusive slots plus the name and
// vibe fields of the save form. It is not safe for concurrent use.
type Draft struct {
	Name  string
	Vibe  models.Vibe
	slots models.Slots
}

func NewDraft() *Draft {
	return &Draft{Vibe: models.DefaultVibe, slots: models.Slots{}}
}

// Toggle deselects the item if it occupies a slot and assigns it otherwise.
func (d *Draft) Toggle(item models.Item) {
	if key, ok := d.slots.SlotOf(item.ID); ok {
		d.ClearSlot(key)
		return
	}
	d.Assign(item)
}

// Assign places the item in its category's slot, replacing the occupant. A
// one-piece goes to the top slot and empties the bottom slot.
func (d *Draft) Assign(item models.Item) {
	if item.ID == "" {
		return
	}
	if key, ok := d.slots.SlotOf(item.ID); ok {
		d.ClearSlot(key)
	}
	if item.Category == models.CategoryOnePiece {
		d.ClearSlot(models.SlotBottom)
	}
	d.slots[item.Category.Slot()] = item.ID
}

func (d *Draft) ClearSlot(key models.SlotKey) {
	delete(d.slots, key)
}

func (d *Draft) Reset() {
	d.Name = ""
	d.Vibe = models.DefaultVibe
	d.slots = models.Slots{}
}

func (d *Draft) Slot(key models.SlotKey) string {
	return d.slots[key]
}

// Slots returns a copy of the current assignment.
func (d *Draft) Slots() models.Slots {
	return d.slots.Clone()
}

// SelectedIDs lists the occupied slots' item ids in slot order.
func (d *Draft) SelectedIDs() []string {
	return d.slots.ItemIDs()
}

func (d *Draft) IsSelected(id string) bool {
	_, ok := d.slots.SlotOf(id)
	return ok
}

// Commit saves the draft as an outfit. The draft is left as is; callers reset
// it after a successful save.
func (d *Draft) Commit(ctx context.Context, outfits *OutfitRepository) (models.Outfit, error) {
	return outfits.Commit(ctx, d.Name, d.Vibe, d.slots)
}
