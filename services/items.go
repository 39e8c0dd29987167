package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"atelierapi/languageutil"
	"atelierapi/logger"
	"atelierapi/models"
	"atelierapi/store"

	"github.com/samber/lo"
)

type ItemFilter struct {
	// Category is a taxonomy value, CategoryAll or empty (no filter).
	Category   models.Category
	SearchTerm string
}

func (f ItemFilter) Match(item models.Item) bool {
	if f.Category != "" && f.Category != models.CategoryAll && item.Category != f.Category {
		return false
	}
	return languageutil.ContainsFold(item.Name, f.SearchTerm)
}

// ItemRepository owns the closet working set, most recently added first.
type ItemRepository struct {
	mu    sync.RWMutex
	store store.Store
	items []models.Item
	opts  repoOptions
}

// NewItemRepository loads the closet from s. An unreadable collection starts
// empty.
func NewItemRepository(ctx context.Context, s store.Store, opts ...Option) *ItemRepository {
	items := store.LoadRecords[models.Item](ctx, s, store.ItemsCollection)
	logger.Debug("closet loaded", logger.Int("items", len(items)))
	return &ItemRepository{
		store: s,
		items: items,
		opts:  buildOptions(opts),
	}
}

func (r *ItemRepository) List(filter ItemFilter) []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := lo.FilterMap(r.items, func(item models.Item, _ int) (models.Item, bool) {
		return item.Clone(), filter.Match(item)
	})
	return out
}

func (r *ItemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *ItemRepository) Get(id string) (models.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Item{}, false
	}
	return r.items[idx].Clone(), true
}

func validateItemInput(name string, category models.Category) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewValidationError("empty name")
	}
	if !category.Valid() {
		return "", models.NewValidationError("unknown category " + string(category))
	}
	return name, nil
}

// Add prepends a new piece and persists the closet.
func (r *ItemRepository) Add(ctx context.Context, name string, category models.Category, image *string) (models.Item, error) {
	name, err := validateItemInput(name, category)
	if err != nil {
		return models.Item{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.opts.newID()
	for r.indexOf(id) >= 0 {
		id = r.opts.newID()
	}
	item := models.Item{
		ID:        id,
		Name:      name,
		Category:  category,
		Image:     cloneImage(image),
		CreatedAt: r.opts.now(),
	}
	r.items = slices.Insert(r.items, 0, item)
	r.persist(ctx)

	logger.Info("piece added", logger.String("item_id", item.ID), logger.String("category", string(category)))
	return item.Clone(), nil
}

// Update replaces name, category and image in place. A nil image clears it.
func (r *ItemRepository) Update(ctx context.Context, id string, name string, category models.Category, image *string) (models.Item, error) {
	name, err := validateItemInput(name, category)
	if err != nil {
		return models.Item{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Item{}, models.ErrItemNotFound
	}
	item := &r.items[idx]
	item.Name = name
	item.Category = category
	item.Image = cloneImage(image)
	r.persist(ctx)

	return item.Clone(), nil
}

// Remove deletes a piece. Outfits keep their reference and drop it when resolved.
func (r *ItemRepository) Remove(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	r.persist(ctx)
	return true
}

func (r *ItemRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(item models.Item) bool { return item.ID == id })
}

// persist is best effort: a failed save is reported and the working set stays.
func (r *ItemRepository) persist(ctx context.Context) {
	store.ReportWriteError(store.SaveRecords(ctx, r.store, store.ItemsCollection, r.items))
}

func cloneImage(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	return lo.ToPtr(*image)
}
