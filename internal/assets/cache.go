package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	// Flag assets are PNGs; JPEG support costs nothing and covers
	// custom asset directories.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"
)

// Size is the bounding box a flag is scaled to fit, preserving aspect
// ratio.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Stats exposes cache counters for a debug overlay.
type Stats struct {
	// Entries is the number of cached (code, size) images.
	Entries int

	// Decodes counts decode operations since the cache was created.
	// A cache hit performs zero decodes.
	Decodes int

	// Bytes is the total decoded pixel bytes currently held.
	Bytes int64

	// Evictions counts entries dropped to honor the byte budget.
	Evictions int
}

type cacheKey struct {
	code string
	size Size
}

type entry struct {
	img   image.Image
	bytes int64
}

// Cache lazily loads, decodes and scales flag images, memoizing the
// result per (code, size) pair. The zero byte budget means unbounded;
// a positive budget evicts oldest entries first, without changing the
// Get contract.
//
// Reads and writes are mutex-guarded and concurrent loads of the same
// key are collapsed into a single decode via singleflight, so the
// cache stays correct if asset loading ever moves off the main loop.
type Cache struct {
	store    Store
	maxBytes int64
	logger   *slog.Logger

	group singleflight.Group

	mu        sync.Mutex
	entries   map[cacheKey]*entry
	order     []cacheKey // insertion order, for eviction
	decodes   int
	bytes     int64
	evictions int

	placeholderMu sync.Mutex
	placeholders  map[Size]image.Image
}

// Option configures a Cache.
type Option func(*Cache)

// WithByteBudget bounds the total decoded bytes the cache holds.
func WithByteBudget(maxBytes int64) Option {
	return func(c *Cache) { c.maxBytes = maxBytes }
}

// NewCache creates a flag cache over the backing store.
func NewCache(store Store, logger *slog.Logger, opts ...Option) *Cache {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cache{
		store:        store,
		logger:       logger.With(slog.String("component", "flag_cache")),
		entries:      make(map[cacheKey]*entry),
		placeholders: make(map[Size]image.Image),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the flag for the country code scaled to fit the target
// size. The first request for a (code, size) pair loads and decodes
// from the backing store; subsequent requests return the cached image
// without decoding. Unknown codes yield an error wrapping
// domain.ErrNotFound; callers substitute Placeholder.
func (c *Cache) Get(ctx context.Context, code string, size Size) (image.Image, error) {
	key := cacheKey{code: code, size: size}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.img, nil
	}
	c.mu.Unlock()

	img, err, _ := c.group.Do(code+"|"+size.String(), func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// populated the entry while we waited.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return e.img, nil
		}
		c.mu.Unlock()

		data, err := c.store.LoadImageBytes(ctx, code)
		if err != nil {
			return nil, err
		}

		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode flag %q: %w", code, err)
		}
		scaled := scaleToFit(decoded, size)

		c.put(key, scaled)
		return scaled, nil
	})
	if err != nil {
		return nil, err
	}
	return img.(image.Image), nil
}

func (c *Cache) put(key cacheKey, img image.Image) {
	size := imageBytes(img)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.decodes++
	c.entries[key] = &entry{img: img, bytes: size}
	c.order = append(c.order, key)
	c.bytes += size

	for c.maxBytes > 0 && c.bytes > c.maxBytes && len(c.order) > 1 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if e, ok := c.entries[oldest]; ok {
			c.bytes -= e.bytes
			delete(c.entries, oldest)
			c.evictions++
		}
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   len(c.entries),
		Decodes:   c.decodes,
		Bytes:     c.bytes,
		Evictions: c.evictions,
	}
}

// Clear drops every cached image, e.g. on a resolution change.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*entry)
	c.order = nil
	c.bytes = 0
}

// Placeholder returns the substitute image shown when a flag asset is
// missing: a gray field with a crossed-out marker. One placeholder is
// built per size and reused.
func (c *Cache) Placeholder(size Size) image.Image {
	c.placeholderMu.Lock()
	defer c.placeholderMu.Unlock()

	if img, ok := c.placeholders[size]; ok {
		return img
	}

	w, h := size.Width, size.Height
	if w <= 0 {
		w = 160
	}
	if h <= 0 {
		h = 100
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := color.RGBA{R: 210, G: 210, B: 210, A: 255}
	border := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	cross := color.RGBA{R: 200, A: 255}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x < 2 || y < 2 || x >= w-2 || y >= h-2:
				img.Set(x, y, border)
			default:
				img.Set(x, y, fill)
			}
		}
	}
	// Diagonals marking "no flag".
	for x := 0; x < w; x++ {
		y := x * (h - 1) / max(w-1, 1)
		img.Set(x, y, cross)
		img.Set(x, h-1-y, cross)
	}

	c.placeholders[size] = img
	return img
}

// scaleToFit scales src to the largest size fitting within the target
// box while preserving aspect ratio.
func scaleToFit(src image.Image, size Size) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || size.Width <= 0 || size.Height <= 0 {
		return src
	}

	w := size.Width
	h := b.Dy() * size.Width / b.Dx()
	if h > size.Height {
		h = size.Height
		w = b.Dx() * size.Height / b.Dy()
	}
	w = max(w, 1)
	h = max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func imageBytes(img image.Image) int64 {
	b := img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4
}
