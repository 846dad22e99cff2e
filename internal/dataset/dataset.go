// Package dataset loads every data asset into one immutable value.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/charindex"
	"github.com/verte-zerg/glyphscope/internal/classify"
	"github.com/verte-zerg/glyphscope/internal/geo"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/parse"
)

// Dataset holds the parsed and annotated records. It is never modified after
// Load returns.
type Dataset struct {
	Frequencies []model.CharFrequency
	Chars       []model.UnicodeChar
	Index       *charindex.Index
	Scripts     []model.Script
	Emoji       map[model.EmojiRegion][]model.Emoji
	Versions    []model.UnicodeVersion
	Timeline    []model.TimelineEvent
	// Countries holds world map names when the atlas was requested.
	Countries []string

	// Missing lists optional assets that failed to load and were replaced by
	// empty tables.
	Missing []string
}

// EmojiTable returns the usage table for a region, falling back to the
// all-regions table for unknown values.
func (d *Dataset) EmojiTable(region model.EmojiRegion) []model.Emoji {
	if table, ok := d.Emoji[region]; ok {
		return table
	}
	return d.Emoji[model.EmojiAll]
}

// Degraded reports whether any optional asset is missing.
func (d *Dataset) Degraded() bool {
	return len(d.Missing) > 0
}

// Options tunes Load.
type Options struct {
	// MinElapsed is the minimum time Load takes, so a loading screen is not
	// just a flash.
	MinElapsed time.Duration
	// WithAtlas also loads the world atlas for country names.
	WithAtlas bool
	// AtlasSource is where the atlas comes from. It defaults to the main
	// source.
	AtlasSource assets.Source
}

// Required assets fail the whole load.
var Required = map[string]bool{
	assets.UnicodeScripts: true,
	assets.UnicodeInfo:    true,
}

func tracer() tracing.Trace {
	return tracing.Select("glyphscope.dataset")
}

// Load fetches every asset concurrently and builds the dataset. Optional
// assets that fail are recorded in Dataset.Missing; failures of required
// assets are joined into the returned error.
func Load(ctx context.Context, src assets.Source, opts Options) (*Dataset, error) {
	start := time.Now()
	names := append([]string(nil), assets.Names...)
	if opts.WithAtlas {
		names = append(names, assets.WorldAtlas)
	}

	var (
		mu     sync.Mutex
		bodies = make(map[string]string, len(names))
		errs   = make(map[string]error)
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			from := src
			if name == assets.WorldAtlas && opts.AtlasSource != nil {
				from = opts.AtlasSource
			}
			data, err := from.Fetch(gctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[name] = err
				if Required[name] {
					return fmt.Errorf("failed to load %s: %w", name, err)
				}
				return nil
			}
			bodies[name] = string(data)
			return nil
		})
	}
	groupErr := g.Wait()

	if err := waitFloor(ctx, start, opts.MinElapsed); err != nil {
		return nil, err
	}

	if groupErr != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Fetches cut short by the group cancelling are not failures of
		// their own.
		var joined []error
		for _, name := range names {
			if err, ok := errs[name]; ok && !errors.Is(err, context.Canceled) {
				joined = append(joined, fmt.Errorf("%s: %w", name, err))
			}
		}
		err := errors.Join(joined...)
		if err == nil {
			err = groupErr
		}
		tracer().Errorf("load failed: %v", err)
		return nil, err
	}

	ds := build(bodies)
	for _, name := range names {
		if err, ok := errs[name]; ok {
			tracer().Infof("optional asset %s unavailable: %v", name, err)
			ds.Missing = append(ds.Missing, name)
		}
	}
	tracer().Debugf("dataset ready in %s (%d scripts, %d chars)", time.Since(start), len(ds.Scripts), len(ds.Chars))
	return ds, nil
}

func waitFloor(ctx context.Context, start time.Time, floor time.Duration) error {
	remaining := floor - time.Since(start)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FromText builds a dataset from raw asset bodies keyed by asset name. Absent
// bodies produce empty tables.
func FromText(bodies map[string]string) *Dataset {
	return build(bodies)
}

func build(bodies map[string]string) *Dataset {
	chars := parse.UnicodeChars(bodies[assets.UnicodeInfo])
	ds := &Dataset{
		Frequencies: parse.Frequencies(bodies[assets.ASCIIFreq]),
		Chars:       chars,
		Index:       charindex.Build(chars),
		Scripts:     classify.Annotate(parse.Scripts(bodies[assets.UnicodeScripts])),
		Emoji: map[model.EmojiRegion][]model.Emoji{
			model.EmojiAll: parse.Emoji(bodies[assets.EmojiAll]),
			model.EmojiUS:  parse.Emoji(bodies[assets.EmojiUS]),
			model.EmojiUK:  parse.Emoji(bodies[assets.EmojiUK]),
		},
		Versions: Versions,
		Timeline: Timeline,
	}
	if atlas, ok := bodies[assets.WorldAtlas]; ok {
		names, err := geo.CountryNames([]byte(atlas))
		if err != nil {
			tracer().Infof("ignoring world atlas: %v", err)
		}
		ds.Countries = names
	}
	return ds
}
