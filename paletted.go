// Package paletted implements a paletted container: a compact bulk store
// for collections whose cells repeat a small set of distinct values.
//
// A container pairs a palette (value to small-index mapping, see package
// palette) with bit-packed index storage (see package bitarray). Each
// cell stores only the palette index of its value, at the minimum bit
// width the palette's current size needs. When an insert no longer fits
// the active palette generation, the container asks its Policy for a
// larger configuration, rebuilds storage and palette off to the side,
// re-imports every cell, swaps the pair in and retries; the resize is
// invisible to readers of Get.
//
// Containers are plain synchronous data structures. Concurrent Get calls
// are safe; Set and Swap may replace the whole storage/palette pair and
// require external mutual exclusion against all other calls.
package paletted

import (
	"errors"
	"fmt"

	"github.com/voxelforge/paletted/bitarray"
	"github.com/voxelforge/paletted/palette"
)

// Config is one palette generation: the active strategy and the element
// width of the index storage. Bits zero means the empty storage marker
// (a single implicit palette entry covers every cell).
type Config struct {
	Strategy palette.Strategy
	Bits     int
}

// Policy chooses the configuration for a requested element width. The
// container calls it with the width reported by a palette overflow and
// installs whatever it answers; the returned configuration must admit at
// least one more distinct value than the overflowing generation, or the
// triggering Set/Swap fails.
type Policy[T comparable] interface {
	Configuration(ids palette.IndexList[T], bits int) Config
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc[T comparable] func(ids palette.IndexList[T], bits int) Config

func (f PolicyFunc[T]) Configuration(ids palette.IndexList[T], bits int) Config {
	return f(ids, bits)
}

// Container is a bulk store of size cells, each holding one value of T.
type Container[T comparable] struct {
	ids    palette.IndexList[T]
	policy Policy[T]
	size   int

	cfg   Config
	pal   palette.Palette[T]
	store Storage
}

// New returns a container of size cells, every cell holding fill. The
// initial generation is whatever policy answers for width zero, with
// fill as its first palette entry.
func New[T comparable](ids palette.IndexList[T], policy Policy[T], size int, fill T) (*Container[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("paletted: container size %d must be positive", size)
	}
	c := &Container[T]{ids: ids, policy: policy, size: size}
	c.cfg = policy.Configuration(ids, 0)
	c.pal, c.store = c.makeData(c.cfg)
	if _, err := c.pal.IndexOrInsert(fill); err != nil {
		return nil, fmt.Errorf("paletted: seeding fill value: %w", err)
	}
	return c, nil
}

// makeData builds a fresh palette and storage pair for cfg.
func (c *Container[T]) makeData(cfg Config) (palette.Palette[T], Storage) {
	var pal palette.Palette[T]
	switch cfg.Strategy {
	case palette.StrategySingular:
		pal = palette.NewSingular[T]()
	case palette.StrategyArray:
		pal = palette.NewArray[T](cfg.Bits)
	case palette.StrategyBiMap:
		pal = palette.NewBiMap[T](cfg.Bits)
	case palette.StrategyDirect:
		pal = palette.NewDirect(c.ids)
	default:
		panic(fmt.Sprintf("paletted: unknown strategy %v", cfg.Strategy))
	}
	var store Storage
	if cfg.Bits == 0 {
		store = emptyStorage{size: c.size}
	} else {
		store = bitarray.New(cfg.Bits, c.size)
	}
	return pal, store
}

// Size returns the number of cells.
func (c *Container[T]) Size() int { return c.size }

// Configuration returns the active palette generation.
func (c *Container[T]) Configuration() Config { return c.cfg }

// Get returns the value held at cell i, or false when i is out of range.
// Get never mutates and never triggers a resize.
func (c *Container[T]) Get(i int) (T, bool) {
	idx, ok := c.store.Get(i)
	if !ok {
		var zero T
		return zero, false
	}
	return c.pal.ValueAt(idx)
}

// Set stores value at cell i, growing the palette generation if needed.
// It reports a *bitarray.IndexError when i is out of range.
func (c *Container[T]) Set(i int, value T) error {
	idx, err := c.indexOrGrow(value)
	if err != nil {
		return err
	}
	return c.store.Set(i, idx)
}

// Swap stores value at cell i and returns the value previously held
// there. The error contract is identical to Set; on error nothing is
// written. A resize triggered by the insert never changes what Swap
// observes at any cell.
func (c *Container[T]) Swap(i int, value T) (T, error) {
	var zero T
	idx, err := c.indexOrGrow(value)
	if err != nil {
		return zero, err
	}
	old, err := c.store.Swap(i, idx)
	if err != nil {
		return zero, err
	}
	prev, ok := c.pal.ValueAt(old)
	if !ok {
		return zero, fmt.Errorf("paletted: storage holds index %d absent from palette", old)
	}
	return prev, nil
}

// Count invokes fn once per distinct value present in storage, with the
// number of cells holding it.
func (c *Container[T]) Count(fn func(value T, n int)) {
	counts := make(map[uint32]int, c.pal.Len())
	for idx := range c.store.Values() {
		counts[idx]++
	}
	for idx, n := range counts {
		if v, ok := c.pal.ValueAt(idx); ok {
			fn(v, n)
		}
	}
}

// indexOrGrow resolves value to a storage index, rebuilding the palette
// generation when the active one is full.
func (c *Container[T]) indexOrGrow(value T) (uint32, error) {
	idx, err := c.pal.IndexOrInsert(value)
	var ovf *palette.Overflow[T]
	if errors.As(err, &ovf) {
		return c.grow(ovf)
	}
	return idx, err
}

// grow installs the generation the policy chooses for the overflow and
// re-imports every cell, then retries the insert that overflowed.
// The replacement pair is fully built before anything is swapped in; a
// failure during the import leaves the container untouched, and even
// the pathological retry failure never alters cell content.
func (c *Container[T]) grow(ovf *palette.Overflow[T]) (uint32, error) {
	cfg := c.policy.Configuration(c.ids, ovf.Bits)
	if cfg == c.cfg {
		// The policy has nowhere bigger to go; looping on the same
		// generation would never terminate.
		return 0, fmt.Errorf("%w: policy kept %v/%d bits for a full palette", ErrPolicyExhausted, cfg.Strategy, cfg.Bits)
	}
	pal, store := c.makeData(cfg)
	for i := 0; i < c.size; i++ {
		old, ok := c.store.Get(i)
		if !ok {
			return 0, fmt.Errorf("paletted: cell %d unreadable during resize", i)
		}
		v, ok := c.pal.ValueAt(old)
		if !ok {
			return 0, fmt.Errorf("paletted: storage holds index %d absent from palette", old)
		}
		idx, err := pal.IndexOrInsert(v)
		if err != nil {
			return 0, fmt.Errorf("paletted: re-importing cell %d: %w", i, err)
		}
		if err := store.Set(i, idx); err != nil {
			return 0, fmt.Errorf("paletted: re-importing cell %d: %w", i, err)
		}
	}
	c.cfg, c.pal, c.store = cfg, pal, store

	idx, err := c.pal.IndexOrInsert(ovf.Value)
	if err != nil {
		// The policy violated its capacity contract.
		return 0, fmt.Errorf("%w: new %v/%d bit generation rejected insert: %v", ErrPolicyExhausted, cfg.Strategy, cfg.Bits, err)
	}
	return idx, nil
}
