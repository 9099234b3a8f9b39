package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
)

const (
	thumbWidth  = 320
	thumbHeight = 420
)

// Header band colors, picked per resource by name hash so a resource keeps
// a stable look across renders.
var thumbPalette = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0xF5, A: 0xFF},
	{R: 0x0C, G: 0xA6, B: 0x78, A: 0xFF},
	{R: 0xE8, G: 0x59, B: 0x0C, A: 0xFF},
	{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF},
	{R: 0xDB, G: 0x27, B: 0x77, A: 0xFF},
	{R: 0x08, G: 0x91, B: 0xB2, A: 0xFF},
}

// ThumbnailCache renders placeholder thumbnails for resources without a
// stored one and keeps them in a bounded cache keyed by resource id, so a
// given resource is rendered at most once while cached.
type ThumbnailCache struct {
	mu      sync.Mutex
	max     int
	entries map[uint][]byte
	order   []uint
}

func NewThumbnailCache(max int) *ThumbnailCache {
	if max <= 0 {
		max = 256
	}
	return &ThumbnailCache{
		max:     max,
		entries: make(map[uint][]byte),
	}
}

// Get returns the cached PNG for the resource, rendering it on a miss.
func (t *ThumbnailCache) Get(resourceID uint, name string) ([]byte, error) {
	t.mu.Lock()
	if png, ok := t.entries[resourceID]; ok {
		t.mu.Unlock()
		return png, nil
	}
	t.mu.Unlock()

	png, err := renderPlaceholder(name)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.entries[resourceID]; ok {
		return existing, nil
	}
	if len(t.entries) >= t.max {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.entries, oldest)
	}
	t.entries[resourceID] = png
	t.order = append(t.order, resourceID)
	return png, nil
}

func (t *ThumbnailCache) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// renderPlaceholder draws a stylized document page: colored header band,
// page fold, and text lines.
func renderPlaceholder(name string) ([]byte, error) {
	dc := gg.NewContext(thumbWidth, thumbHeight)

	// Page
	dc.SetRGB255(0xF8, 0xF8, 0xF6)
	dc.Clear()

	// Header band
	band := thumbPalette[hashName(name)%uint32(len(thumbPalette))]
	dc.SetColor(band)
	dc.DrawRectangle(0, 0, thumbWidth, 96)
	dc.Fill()

	// Fold corner
	dc.SetRGB255(0xE2, 0xE2, 0xDE)
	dc.MoveTo(thumbWidth-48, 0)
	dc.LineTo(thumbWidth, 48)
	dc.LineTo(thumbWidth-48, 48)
	dc.ClosePath()
	dc.Fill()

	// Text lines
	dc.SetRGB255(0xC9, 0xC9, 0xC4)
	for i := 0; i < 8; i++ {
		y := 140.0 + float64(i)*32
		width := float64(thumbWidth) - 64
		if i%3 == 2 {
			width *= 0.6
		}
		dc.DrawRoundedRectangle(32, y, width, 10, 5)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func hashName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}
