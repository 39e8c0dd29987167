package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"atelierapi/languageutil"
	"atelierapi/logger"
	"atelierapi/models"
	"atelierapi/services"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type ListItemsIn struct {
	Category string `query:"category" validate:"omitempty,category_filter"`
	Search   string `query:"q" validate:"max=100"`
}

type CreateItemIn struct {
	Name     string  `json:"name" validate:"max=100"`
	Category string  `json:"category" validate:"required,category"`
	Image    *string `json:"image"`
}

// UploadItemIn is the multipart form; the image travels as the "image" file.
type UploadItemIn struct {
	Name     string `form:"name" validate:"max=100"`
	Category string `form:"category" validate:"required,category"`
}

type UpdateItemIn struct {
	Name     string  `json:"name" validate:"max=100"`
	Category string  `json:"category" validate:"required,category"`
	Image    *string `json:"image"`
}

type ItemsListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Badge string `json:"badge"`
	Slot  string `json:"slot,omitempty"`
}

type ClosetController struct {
	Items         *services.ItemRepository
	Encoder       services.ImageEncoder
	EncodeTimeout time.Duration
}

func (controller *ClosetController) ClosetRoutes(g *echo.Group) {
	g.GET("/items", controller.ListItems)
	g.POST("/items", controller.CreateItem)
	g.POST("/items/upload", controller.UploadItem)
	g.PUT("/items/:id", controller.UpdateItem)
	g.DELETE("/items/:id", controller.DeleteItem)
	g.GET("/categories", controller.ListCategories)
}

func (controller *ClosetController) ListItems(c echo.Context) error {
	var req ListItemsIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	items := controller.Items.List(services.ItemFilter{
		Category:   models.Category(req.Category),
		SearchTerm: req.Search,
	})
	return c.JSON(http.StatusOK, ItemsListResponse{
		Items: NewItemResponses(items),
		Total: controller.Items.Count(),
	})
}

func (controller *ClosetController) CreateItem(c echo.Context) error {
	var req CreateItemIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	item, err := controller.Items.Add(c.Request().Context(), req.Name, models.Category(req.Category), req.Image)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, NewItemResponse(item))
}

// UploadItem adds a piece from a multipart form with an optional "image"
// file. An encode that does not finish within EncodeTimeout leaves the piece
// without an image.
func (controller *ClosetController) UploadItem(c echo.Context) error {
	var req UploadItemIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	draft := services.NewItemDraft()
	draft.Name = req.Name
	draft.Category = models.Category(req.Category)

	fileHeader, err := c.FormFile("image")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return errorResponse(c, models.NewValidationError("Could not read the image"))
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.Request().Context(), controller.encodeTimeout())
		defer cancel()

		err = draft.AttachImage(ctx, controller.Encoder, fileHeader.Filename, file)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("image encode did not finish, saving without image",
				logger.String("file_name", fileHeader.Filename),
			)
		case err != nil:
			return errorResponse(c, models.NewValidationError("Unsupported or unreadable image"))
		}
	}

	item, err := draft.Submit(c.Request().Context(), controller.Items)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, NewItemResponse(item))
}

func (controller *ClosetController) encodeTimeout() time.Duration {
	if controller.EncodeTimeout <= 0 {
		return 5 * time.Second
	}
	return controller.EncodeTimeout
}

func (controller *ClosetController) UpdateItem(c echo.Context) error {
	var req UpdateItemIn
	if err := bindRequest(c, &req); err != nil {
		return errorResponse(c, err)
	}
	item, err := controller.Items.Update(c.Request().Context(), c.Param("id"), req.Name, models.Category(req.Category), req.Image)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, NewItemResponse(item))
}

func (controller *ClosetController) DeleteItem(c echo.Context) error {
	if !controller.Items.Remove(c.Request().Context(), c.Param("id")) {
		return errorResponse(c, models.ErrItemNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *ClosetController) ListCategories(c echo.Context) error {
	ids := append([]models.Category{models.CategoryAll}, models.Categories...)
	return c.JSON(http.StatusOK, lo.Map(ids, func(id models.Category, _ int) CategoryResponse {
		resp := CategoryResponse{
			ID:    string(id),
			Label: languageutil.CategoryLabel(id),
			Badge: languageutil.CategoryBadge(id),
		}
		if id != models.CategoryAll {
			resp.Slot = string(id.Slot())
		}
		return resp
	}))
}
