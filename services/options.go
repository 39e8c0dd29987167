package services

import (
	"time"

	"github.com/google/uuid"
)

type repoOptions struct {
	newID func() string
	now   func() time.Time
}

func defaultRepoOptions() repoOptions {
	return repoOptions{
		newID: uuid.NewString,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

type Option func(*repoOptions)

// WithIDGenerator replaces uuid generation. Ids must be unique.
func WithIDGenerator(fn func() string) Option {
	return func(o *repoOptions) { o.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(o *repoOptions) { o.now = fn }
}

func buildOptions(opts []Option) repoOptions {
	o := defaultRepoOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
