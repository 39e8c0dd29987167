package controllers

import (
	"net/http"
	"sync"

	"atelierapi/languageutil"
	"atelierapi/models"
	"atelierapi/services"

	"github.com/labstack/echo/v4"
)

type UpdateDraftIn struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
	Vibe *string `json:"vibe" validate:"omitempty,vibe"`
}

type ToggleItemIn struct {
	ItemID string `json:"item_id" validate:"required"`
}

type StudioPiecesIn struct {
	Category string `query:"category" validate:"omitempty,category_filter"`
	Search   string `query:"q" validate:"max=100"`
}

type SlotResponse struct {
	Slot  string        `json:"slot"`
	Label string        `json:"label"`
	Item  *ItemResponse `json:"item"`
}

type DraftResponse struct {
	Name        string         `json:"name"`
	Vibe        string         `json:"vibe"`
	Slots       []SlotResponse `json:"slots"`
	SelectedIDs []string       `json:"selected_ids"`
}

type StudioPieceResponse struct {
	ItemResponse
	Selected bool `json:"selected"`
}

// StudioController owns the single in-progress outfit draft.
type StudioController struct {
	Items   *services.ItemRepository
	Outfits *services.OutfitRepository

	mu    sync.Mutex
	draft *services.Draft
}

func NewStudioController(items *services.ItemRepository, outfits *services.OutfitRepository) *StudioController {
	return &StudioController{Items: items, Outfits: outfits, draft: services.NewDraft()}
}

func (controller *StudioController) StudioRoutes(g *echo.Group) {
	g.GET("/draft", controller.GetDraft)
	g.PUT("/draft", controller.UpdateDraft)
	g.POST("/draft/toggle", controller.ToggleItem)
	g.DELETE("/draft/slots/:slot", controller.ClearSlot)
	g.POST("/draft/reset", controller.ResetDraft)
	g.POST("/draft/save", controller.SaveDraft)
	g.GET("/pieces", controller.ListPieces)
}

// draftResponse must be called with mu held.
func (controller *StudioController) draftResponse() DraftResponse {
	slots := make([]SlotResponse, 0, len(models.SlotKeys))
	for _, key := range models.SlotKeys {
		slot := SlotResponse{Slot: string(key), Label: languageutil.SlotLabel(key)}
		if id := controller.draft.Slot(key); id != "" {
			if item, ok := controller.Items.Get(id); ok {
				resp := NewItemResponse(item)
				slot.Item = &resp
			}
		}
		slots = append(slots, slot)
	}
	return DraftResponse{
		Name:        controller.draft.Name,
		Vibe:        string(controller.draft.Vibe),
		Slots:       slots,
		SelectedIDs: controller.draft.SelectedIDs(),
	}
}

func (controller *StudioController) GetDraft(c echo.Context) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return c.JSON(http.StatusOK, controller.draftResponse())
}

func (controller *StudioController) UpdateDraft(c echo.Context) error {
	var req UpdateDraftIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if req.Name != nil {
		controller.draft.Name = *req.Name
	}
	if req.Vibe != nil && *req.Vibe != "" {
		controller.draft.Vibe = models.Vibe(*req.Vibe)
	}
	return c.JSON(http.StatusOK, controller.draftResponse())
}

func (controller *StudioController) ToggleItem(c echo.Context) error {
	var req ToggleItemIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	item, ok := controller.Items.Get(req.ItemID)
	if !ok {
		return errorResponse(c, models.ErrItemNotFound)
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draft.Toggle(item)
	return c.JSON(http.StatusOK, controller.draftResponse())
}

func (controller *StudioController) ClearSlot(c echo.Context) error {
	key := models.SlotKey(c.Param("slot"))
	if !key.Valid() {
		return errorResponse(c, models.NewValidationError("unknown slot "+string(key)))
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draft.ClearSlot(key)
	return c.JSON(http.StatusOK, controller.draftResponse())
}

func (controller *StudioController) ResetDraft(c echo.Context) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draft.Reset()
	return c.JSON(http.StatusOK, controller.draftResponse())
}

// SaveDraft commits the draft to the lookbook and resets it. A rejected
// draft is left untouched.
func (controller *StudioController) SaveDraft(c echo.Context) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	outfit, err := controller.draft.Commit(c.Request().Context(), controller.Outfits)
	if err != nil {
		return errorResponse(c, err)
	}
	controller.draft.Reset()
	return c.JSON(http.StatusCreated, NewOutfitResponse(outfit, controller.Outfits.ResolveItems(outfit)))
}

// ListPieces is the closet as seen from the studio, with selection marks.
func (controller *StudioController) ListPieces(c echo.Context) error {
	var req StudioPiecesIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	items := controller.Items.List(services.ItemFilter{
		Category:   models.Category(req.Category),
		SearchTerm: req.Search,
	})

	controller.mu.Lock()
	defer controller.mu.Unlock()
	pieces := make([]StudioPieceResponse, 0, len(items))
	for _, item := range items {
		pieces = append(pieces, StudioPieceResponse{
			ItemResponse: NewItemResponse(item),
			Selected:     controller.draft.IsSelected(item.ID),
		})
	}
	return c.JSON(http.StatusOK, pieces)
}
