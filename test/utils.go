package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"atelierapi/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	var body string
	if param != nil {
		body = JsonString(param)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewRefString(data string) *string {
	return &data
}

// FakeItem builds an item with a realistic name; it is not stored anywhere.
func FakeItem(category models.Category) models.Item {
	return models.Item{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.Color() + " " + gofakeit.Noun(),
		Category:  category,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// StoreMock implements store.Store with testify expectations.
type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *StoreMock) Save(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// FixedClock returns increasing timestamps one second apart.
type FixedClock struct {
	mu   sync.Mutex
	next time.Time
}

func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{next: start.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}
