package controllers

import (
	"net/http"
	"time"

	"atelierapi/models"
	"atelierapi/services"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("category", models.ValidateCategory)
	v.RegisterValidation("category_filter", models.ValidateCategoryFilter)
	v.RegisterValidation("vibe", models.ValidateVibe)
	v.RegisterValidation("slot", models.ValidateSlot)
	return &CustomValidator{validator: v}
}

// SetupServer wires the closet, studio and lookbook routes over the given
// repositories. The process serves a single session with one studio draft.
func SetupServer(
	items *services.ItemRepository,
	outfits *services.OutfitRepository,
	encoder services.ImageEncoder,
	encodeTimeout time.Duration,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	closetController := ClosetController{Items: items, Encoder: encoder, EncodeTimeout: encodeTimeout}
	closetController.ClosetRoutes(e.Group("/closet"))

	studioController := NewStudioController(items, outfits)
	studioController.StudioRoutes(e.Group("/studio"))

	lookbookController := LookbookController{Outfits: outfits}
	lookbookController.LookbookRoutes(e.Group("/lookbook"))

	return e
}
