package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"atelierapi/logger"
	"atelierapi/models"
	"atelierapi/store"
)

// ItemLookup resolves item ids against the current closet.
type ItemLookup interface {
	Get(id string) (models.Item, bool)
}

// OutfitRepository owns the lookbook, most recently saved first. Outfits are
// never edited after saving.
type OutfitRepository struct {
	mu      sync.RWMutex
	store   store.Store
	items   ItemLookup
	outfits []models.Outfit
	opts    repoOptions
}

func NewOutfitRepository(ctx context.Context, s store.Store, items ItemLookup, opts ...Option) *OutfitRepository {
	outfits := store.LoadRecords[models.Outfit](ctx, s, store.OutfitsCollection)
	logger.Debug("lookbook loaded", logger.Int("outfits", len(outfits)))
	return &OutfitRepository{
		store:   s,
		items:   items,
		outfits: outfits,
		opts:    buildOptions(opts),
	}
}

func (r *OutfitRepository) List() []models.Outfit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Outfit, 0, len(r.outfits))
	for _, outfit := range r.outfits {
		out = append(out, outfit.Clone())
	}
	return out
}

func (r *OutfitRepository) Get(id string) (models.Outfit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Outfit{}, false
	}
	return r.outfits[idx].Clone(), true
}

// ResolveItems maps the outfit's item ids to closet items in id order. Ids
// that no longer resolve are skipped.
func (r *OutfitRepository) ResolveItems(outfit models.Outfit) []models.Item {
	resolved := make([]models.Item, 0, len(outfit.ItemIDs))
	for _, id := range outfit.ItemIDs {
		item, ok := r.items.Get(id)
		if !ok {
			logger.Debug("dangling item reference",
				logger.String("outfit_id", outfit.ID),
				logger.String("item_id", id),
			)
			continue
		}
		resolved = append(resolved, item)
	}
	return resolved
}

// Commit validates and saves a new outfit at the front of the lookbook.
func (r *OutfitRepository) Commit(ctx context.Context, name string, vibe models.Vibe, slots models.Slots) (models.Outfit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Outfit{}, models.NewValidationError("empty name")
	}
	if vibe == "" {
		vibe = models.DefaultVibe
	}
	if !vibe.Valid() {
		return models.Outfit{}, models.NewValidationError("unknown vibe " + string(vibe))
	}
	seen := make(map[string]bool, len(slots))
	for key, id := range slots {
		if !key.Valid() {
			return models.Outfit{}, models.NewValidationError("unknown slot " + string(key))
		}
		if id == "" {
			continue
		}
		if seen[id] {
			return models.Outfit{}, models.NewValidationError("item in more than one slot")
		}
		seen[id] = true
	}
	itemIDs := slots.ItemIDs()
	if len(itemIDs) == 0 {
		return models.Outfit{}, models.NewValidationError("no items selected")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.opts.newID()
	for r.indexOf(id) >= 0 {
		id = r.opts.newID()
	}
	outfit := models.Outfit{
		ID:        id,
		Name:      name,
		Vibe:      vibe,
		ItemIDs:   itemIDs,
		Slots:     slots.Clone(),
		CreatedAt: r.opts.now(),
	}
	r.outfits = slices.Insert(r.outfits, 0, outfit)
	r.persist(ctx)

	logger.Info("outfit saved",
		logger.String("outfit_id", outfit.ID),
		logger.String("vibe", string(vibe)),
		logger.Int("pieces", len(itemIDs)),
	)
	return outfit.Clone(), nil
}

// Remove deletes the outfit and reports whether it existed.
func (r *OutfitRepository) Remove(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.outfits = slices.Delete(r.outfits, idx, idx+1)
	r.persist(ctx)
	return true
}

func (r *OutfitRepository) indexOf(id string) int {
	return slices.IndexFunc(r.outfits, func(o models.Outfit) bool { return o.ID == id })
}

func (r *OutfitRepository) persist(ctx context.Context) {
	store.ReportWriteError(store.SaveRecords(ctx, r.store, store.OutfitsCollection, r.outfits))
}
