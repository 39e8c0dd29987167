package models

import (
	"time"

	"github.com/go-playground/validator"
)

type Vibe string

const (
	VibeCasual Vibe = "casual"
	VibeFormal Vibe = "formal"
	VibeWork   Vibe = "work"
	VibeParty  Vibe = "party"
	VibeCozy   Vibe = "cozy"
	VibeSporty Vibe = "sporty"

	DefaultVibe = VibeCasual
)

var Vibes = []Vibe{VibeCasual, VibeFormal, VibeWork, VibeParty, VibeCozy, VibeSporty}

func (v Vibe) Valid() bool {
	for _, known := range Vibes {
		if v == known {
			return true
		}
	}
	return false
}

func ValidateVibe(fl validator.FieldLevel) bool {
	return Vibe(fl.Field().String()).Valid()
}

type Outfit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Vibe      Vibe      `json:"vibe"`
	ItemIDs   []string  `json:"itemIds"`
	Slots     Slots     `json:"slots,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o Outfit) Clone() Outfit {
	if o.ItemIDs != nil {
		o.ItemIDs = append([]string(nil), o.ItemIDs...)
	}
	o.Slots = o.Slots.Clone()
	return o
}
