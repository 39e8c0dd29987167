package controllers

import (
	"net/http"
	"time"

	"atelierapi/languageutil"
	"atelierapi/models"
	"atelierapi/services"

	"github.com/labstack/echo/v4"
)

type OutfitResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Vibe       string            `json:"vibe"`
	VibeLabel  string            `json:"vibe_label"`
	ItemIDs    []string          `json:"item_ids"`
	Slots      map[string]string `json:"slots,omitempty"`
	PieceCount int               `json:"piece_count"`
	Items      []ItemResponse    `json:"items"`
	CreatedAt  string            `json:"created_at"`
}

// NewOutfitResponse renders an outfit with its resolved pieces. PieceCount
// counts the pieces that still exist.
func NewOutfitResponse(outfit models.Outfit, items []models.Item) OutfitResponse {
	var slots map[string]string
	if len(outfit.Slots) > 0 {
		slots = make(map[string]string, len(outfit.Slots))
		for key, id := range outfit.Slots {
			slots[string(key)] = id
		}
	}
	return OutfitResponse{
		ID:         outfit.ID,
		Name:       outfit.Name,
		Vibe:       string(outfit.Vibe),
		VibeLabel:  languageutil.VibeLabel(outfit.Vibe),
		ItemIDs:    outfit.ItemIDs,
		Slots:      slots,
		PieceCount: len(items),
		Items:      NewItemResponses(items),
		CreatedAt:  outfit.CreatedAt.Format(time.RFC3339Nano),
	}
}

type LookbookController struct {
	Outfits *services.OutfitRepository
}

func (controller *LookbookController) LookbookRoutes(g *echo.Group) {
	g.GET("/outfits", controller.ListOutfits)
	g.GET("/outfits/:id", controller.GetOutfit)
	g.DELETE("/outfits/:id", controller.DeleteOutfit)
}

func (controller *LookbookController) ListOutfits(c echo.Context) error {
	outfits := controller.Outfits.List()
	out := make([]OutfitResponse, 0, len(outfits))
	for _, outfit := range outfits {
		out = append(out, NewOutfitResponse(outfit, controller.Outfits.ResolveItems(outfit)))
	}
	return c.JSON(http.StatusOK, out)
}

func (controller *LookbookController) GetOutfit(c echo.Context) error {
	outfit, ok := controller.Outfits.Get(c.Param("id"))
	if !ok {
		return errorResponse(c, models.ErrOutfitNotFound)
	}
	return c.JSON(http.StatusOK, NewOutfitResponse(outfit, controller.Outfits.ResolveItems(outfit)))
}

func (controller *LookbookController) DeleteOutfit(c echo.Context) error {
	if !controller.Outfits.Remove(c.Request().Context(), c.Param("id")) {
		return errorResponse(c, models.ErrOutfitNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
