package controllers

import (
	"time"

	"atelierapi/languageutil"
	"atelierapi/models"
)

func StrPointer(b string) *string {
	return &b
}

type ItemResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	Image         *string `json:"image,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewItemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      string(item.Category),
		CategoryLabel: languageutil.CategoryLabel(item.Category),
		Image:         item.Image,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339Nano),
	}
}

func NewItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}
