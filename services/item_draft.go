package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"atelierapi/logger"
	"atelierapi/models"
)

type ImageState int

const (
	ImageNone ImageState = iota
	ImagePending
	ImageReady
)

func (s ImageState) String() string {
	switch s {
	case ImagePending:
		return "pending-image"
	case ImageReady:
		return "image-ready"
	default:
		return "no-image"
	}
}

var ErrDraftClosed = errors.New("draft already submitted or cancelled")

// ItemDraft is the add/edit piece form. Image encoding completes through a
// one-shot callback; a submit while an encode is pending uses the image held
// before the file was selected.
type ItemDraft struct {
	mu       sync.Mutex
	editID   string
	Name     string
	Category models.Category

	state    ImageState
	image    *string
	previous *string // image before the pending selection
	epoch    uint64
	closed   bool
}

func NewItemDraft() *ItemDraft {
	return &ItemDraft{Category: models.CategoryTop}
}

// EditItemDraft starts from an existing item; submitting updates it.
func EditItemDraft(item models.Item) *ItemDraft {
	d := &ItemDraft{
		editID:   item.ID,
		Name:     item.Name,
		Category: item.Category,
		image:    cloneImage(item.Image),
	}
	if d.image != nil {
		d.state = ImageReady
	}
	return d
}

func (d *ItemDraft) State() ImageState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *ItemDraft) Image() *string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneImage(d.image)
}

// BeginImage records a file selection and returns the callback that delivers
// its encoded payload. Only the most recent selection's callback has effect,
// and only once.
func (d *ItemDraft) BeginImage() func(payload string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != ImagePending {
		d.previous = d.image
	}
	d.state = ImagePending
	d.epoch++
	epoch := d.epoch

	var once sync.Once
	return func(payload string, err error) {
		once.Do(func() { d.deliver(epoch, payload, err) })
	}
}

func (d *ItemDraft) deliver(epoch uint64, payload string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || epoch != d.epoch || d.state != ImagePending {
		return
	}
	if err != nil || payload == "" {
		logger.Warn("image encode failed, keeping previous image", logger.ErrorF(err))
		d.image = d.previous
	} else {
		d.image = &payload
	}
	d.previous = nil
	if d.image != nil {
		d.state = ImageReady
	} else {
		d.state = ImageNone
	}
}

// AttachImage selects a file and waits for its encode. When ctx ends first the
// selection stays pending and ctx.Err() is returned.
func (d *ItemDraft) AttachImage(ctx context.Context, enc ImageEncoder, fileName string, r io.Reader) error {
	deliver := d.BeginImage()

	var encodeErr error
	done := EncodeAsync(ctx, enc, fileName, r, func(payload string, err error) {
		encodeErr = err
		deliver(payload, err)
	})
	select {
	case <-done:
		return encodeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClearImage drops the image and any pending selection.
func (d *ItemDraft) ClearImage() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.epoch++
	d.image = nil
	d.previous = nil
	d.state = ImageNone
}

// Submit persists the draft through repo: an add for a new draft, an update
// for an edit draft.
func (d *ItemDraft) Submit(ctx context.Context, repo *ItemRepository) (models.Item, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return models.Item{}, ErrDraftClosed
	}
	image := d.image
	if d.state == ImagePending {
		image = d.previous
	}
	name, category, editID := d.Name, d.Category, d.editID
	d.mu.Unlock()

	var (
		item models.Item
		err  error
	)
	if editID != "" {
		item, err = repo.Update(ctx, editID, name, category, image)
	} else {
		item, err = repo.Add(ctx, name, category, image)
	}
	if err != nil {
		return models.Item{}, err
	}

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return item, nil
}

// Cancel discards the draft. Late image deliveries are ignored.
func (d *ItemDraft) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}
