package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	// Register the frame formats accepted from cameras.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"sync"
)

var (
	// ErrEmptyImage is returned when a frame carries no data.
	ErrEmptyImage = errors.New("image is empty")
	// ErrInvalidImage is returned when a frame cannot be decoded.
	ErrInvalidImage = errors.New("invalid image")
)

// Decode parses a PNG, JPEG or GIF frame.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	return img, nil
}

// FakeClassifier returns a random verdict for every frame.
// It stands in for a real recognition service during development.
type FakeClassifier struct {
	// rnd produces the verdicts.
	rnd *rand.Rand
	// mu protects rnd, which is not safe for concurrent use.
	mu sync.Mutex
}

// NewFakeClassifier creates a classifier seeded with seed.
func NewFakeClassifier(seed uint64) *FakeClassifier {
	return &FakeClassifier{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // Not security sensitive.
	}
}

// ContainsCat flips a coin. The image and threshold are ignored.
func (c *FakeClassifier) ContainsCat(ctx context.Context, _ image.Image, _ float32) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rnd.IntN(2) == 1, nil
}

// HeuristicClassifier judges a frame by the share of cat-toned pixels:
// ginger, brown and tabby shades where red dominates green and green
// dominates blue.
type HeuristicClassifier struct{}

// NewHeuristicClassifier creates a heuristic classifier.
func NewHeuristicClassifier() *HeuristicClassifier {
	return new(HeuristicClassifier)
}

// minWarmth is the minimal red-over-blue difference, on the 8-bit scale, of a cat-toned pixel.
const minWarmth = 40

// ContainsCat reports whether the percentage of cat-toned pixels reaches threshold.
func (c *HeuristicClassifier) ContainsCat(ctx context.Context, img image.Image, threshold float32) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if img == nil {
		return false, ErrEmptyImage
	}

	return CatTonePercent(img) >= float64(threshold), nil
}

// CatTonePercent returns the percentage of cat-toned pixels in img.
func CatTonePercent(img image.Image) float64 {
	bounds := img.Bounds()

	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	var matched int

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels.
			r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)

			if r8 >= g8 && g8 >= b8 && r8-b8 >= minWarmth {
				matched++
			}
		}
	}

	return float64(matched) * 100 / float64(total)
}
