package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atelierapi/models"
	"atelierapi/services"
	"atelierapi/store"
	"atelierapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e       *echo.Echo
	items   *services.ItemRepository
	outfits *services.OutfitRepository
}

func setupTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	items := services.NewItemRepository(ctx, s)
	outfits := services.NewOutfitRepository(ctx, s, items)
	e := SetupServer(items, outfits, services.DataURLEncoder{MaxBytes: 1 << 20}, time.Second)
	return testServer{e: e, items: items, outfits: outfits}
}

func (ts testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func (ts testServer) addItem(t *testing.T, name string, category models.Category) models.Item {
	t.Helper()
	item, err := ts.items.Add(context.Background(), name, category, nil)
	require.NoError(t, err)
	return item
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateItemOk(t *testing.T) {
	ts := setupTestServer(t)

	reqBody := CreateItemIn{
		Name:     "Pink knit sweater",
		Category: "top",
		Image:    StrPointer("data:image/png;base64,AAAA"),
	}
	rec := ts.do(test.NewJSONRequest(http.MethodPost, "/closet/items", reqBody))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var response ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, reqBody.Name, response.Name)
	assert.Equal(t, "Tops", response.CategoryLabel)
	assert.Equal(t, reqBody.Image, response.Image)
	assert.Equal(t, 1, ts.items.Count())
}

func TestCreateItemInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		wantErr string
	}{
		{name: "blank name", body: CreateItemIn{Name: "   ", Category: "top"}, wantErr: "empty name"},
		{name: "missing category", body: CreateItemIn{Name: "Scarf"}},
		{name: "unknown category", body: CreateItemIn{Name: "Scarf", Category: "scarves"}},
		{name: "filter value as category", body: CreateItemIn{Name: "Scarf", Category: "all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			rec := ts.do(test.NewJSONRequest(http.MethodPost, "/closet/items", tt.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			msg := decodeError(t, rec)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
			assert.Zero(t, ts.items.Count())
		})
	}
}

func TestListItems(t *testing.T) {
	ts := setupTestServer(t)
	ts.addItem(t, "Pink Knit Sweater", models.CategoryTop)
	ts.addItem(t, "Wide jeans", models.CategoryBottom)
	ts.addItem(t, "Sweater dress", models.CategoryOnePiece)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "all pieces newest first", target: "/closet/items", want: []string{"Sweater dress", "Wide jeans", "Pink Knit Sweater"}},
		{name: "all category", target: "/closet/items?category=all", want: []string{"Sweater dress", "Wide jeans", "Pink Knit Sweater"}},
		{name: "by category", target: "/closet/items?category=bottom", want: []string{"Wide jeans"}},
		{name: "search", target: "/closet/items?q=SWEATER", want: []string{"Sweater dress", "Pink Knit Sweater"}},
		{name: "category and search", target: "/closet/items?category=top&q=sweater", want: []string{"Pink Knit Sweater"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(test.NewJSONRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var response ItemsListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			names := make([]string, 0, len(response.Items))
			for _, item := range response.Items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, 3, response.Total)
		})
	}
}

func TestListItemsBadCategory(t *testing.T) {
	ts := setupTestServer(t)
	rec := ts.do(test.NewJSONRequest(http.MethodGet, "/closet/items?category=hats", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t)
	item := ts.addItem(t, "Sweater", models.CategoryTop)

	reqBody := UpdateItemIn{Name: "Cardigan", Category: "outerwear"}
	rec := ts.do(test.NewJSONRequest(http.MethodPut, "/closet/items/"+item.ID, reqBody))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, item.ID, response.ID)
	assert.Equal(t, "Cardigan", response.Name)
	assert.Equal(t, "outerwear", response.Category)
	assert.Equal(t, item.CreatedAt.Format(time.RFC3339Nano), response.CreatedAt)

	rec = ts.do(test.NewJSONRequest(http.MethodPut, "/closet/items/missing", reqBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	ts := setupTestServer(t)
	item := ts.addItem(t, "Sweater", models.CategoryTop)

	rec := ts.do(test.NewJSONRequest(http.MethodDelete, "/closet/items/"+item.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, ts.items.Count())

	rec = ts.do(test.NewJSONRequest(http.MethodDelete, "/closet/items/"+item.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newUploadRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/closet/items/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestUploadItem(t *testing.T) {
	ts := setupTestServer(t)

	req := newUploadRequest(t, map[string]string{"name": "Boots", "category": "shoes"}, "boots.png", pngBytes)
	rec := ts.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Image)
	assert.Contains(t, *response.Image, "data:image/png;base64,")

	stored, ok := ts.items.Get(response.ID)
	require.True(t, ok)
	assert.Equal(t, response.Image, stored.Image)
}

func TestUploadItemWithoutFile(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(newUploadRequest(t, map[string]string{"name": "Tote", "category": "bag"}, "", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.Image)
}

func TestUploadItemRejected(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(newUploadRequest(t, map[string]string{"name": "Boots", "category": "shoes"}, "boots.png", []byte("not an image")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(newUploadRequest(t, map[string]string{"name": "", "category": "shoes"}, "boots.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty name", decodeError(t, rec))

	rec = ts.do(newUploadRequest(t, map[string]string{"name": strings.Repeat("x", 101), "category": "shoes"}, "boots.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "max")

	rec = ts.do(newUploadRequest(t, map[string]string{"name": "Boots", "category": "hats"}, "boots.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, ts.items.Count())
}

func TestListCategories(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(test.NewJSONRequest(http.MethodGet, "/closet/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, len(models.Categories)+1)
	assert.Equal(t, CategoryResponse{ID: "all", Label: "All", Badge: "ALL"}, response[0])
	assert.Equal(t, CategoryResponse{ID: "one_piece", Label: "Dresses", Badge: "DRESSES", Slot: "top"}, response[3])
}
