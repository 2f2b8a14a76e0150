package store

import (
	"context"
	"encoding"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options contains configuration options for a SectionStore.
type Options struct {
	// Compression selects the block compression for stored sections.
	Compression Compression

	// IOLimitBytesPerSec throttles the byte rate of puts and gets.
	// Zero disables throttling.
	IOLimitBytesPerSec int

	// Concurrency bounds the number of in-flight operations during
	// batch calls. Zero means DefaultOptions.Concurrency.
	Concurrency int

	// Logger receives per-operation debug logs. Nil disables logging.
	Logger *Logger
}

// DefaultOptions contains the default configuration options for a
// SectionStore.
var DefaultOptions = Options{
	Compression: CompressionZSTD,
	Concurrency: 8,
}

// SectionStore persists encoded sections through a Store, compressing
// each blob and optionally throttling IO. It works on anything exposing
// the standard binary marshaling interfaces, which the paletted
// container does.
type SectionStore struct {
	store   Store
	opts    Options
	limiter *rate.Limiter
	logger  *Logger
}

// NewSectionStore creates a SectionStore over s. A nil opts uses
// DefaultOptions.
func NewSectionStore(s Store, opts *Options) *SectionStore {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultOptions.Concurrency
	}
	ss := &SectionStore{store: s, opts: o, logger: o.Logger}
	if ss.logger == nil {
		ss.logger = NoopLogger()
	}
	if o.IOLimitBytesPerSec > 0 {
		ss.limiter = rate.NewLimiter(rate.Limit(o.IOLimitBytesPerSec), o.IOLimitBytesPerSec)
	}
	return ss
}

// Put encodes, compresses and stores section under key.
func (ss *SectionStore) Put(ctx context.Context, key string, section encoding.BinaryMarshaler) error {
	data, err := section.MarshalBinary()
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", key, err)
	}
	block, err := compressBlock(data, ss.opts.Compression)
	if err != nil {
		return fmt.Errorf("store: compressing %s: %w", key, err)
	}
	if err := ss.waitIO(ctx, len(block)); err != nil {
		return err
	}
	if err := ss.store.Put(ctx, key, block); err != nil {
		return err
	}
	ss.logger.Debug("section stored", "key", key, "encoded", len(data), "stored", len(block))
	return nil
}

// Get fetches, decompresses and decodes the section stored under key.
func (ss *SectionStore) Get(ctx context.Context, key string, section encoding.BinaryUnmarshaler) error {
	block, err := ss.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := ss.waitIO(ctx, len(block)); err != nil {
		return err
	}
	data, err := decompressBlock(block)
	if err != nil {
		return fmt.Errorf("store: decompressing %s: %w", key, err)
	}
	if err := section.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("store: decoding %s: %w", key, err)
	}
	ss.logger.Debug("section loaded", "key", key, "encoded", len(data), "stored", len(block))
	return nil
}

// Delete removes the section stored under key.
func (ss *SectionStore) Delete(ctx context.Context, key string) error {
	return ss.store.Delete(ctx, key)
}

// PutBatch stores all sections concurrently, bounded by the configured
// concurrency. The first failure cancels the remaining operations.
func (ss *SectionStore) PutBatch(ctx context.Context, sections map[string]encoding.BinaryMarshaler) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ss.opts.Concurrency)
	for key, section := range sections {
		g.Go(func() error {
			return ss.Put(ctx, key, section)
		})
	}
	return g.Wait()
}

// GetBatch loads all sections concurrently, bounded by the configured
// concurrency. The first failure cancels the remaining operations.
func (ss *SectionStore) GetBatch(ctx context.Context, sections map[string]encoding.BinaryUnmarshaler) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ss.opts.Concurrency)
	for key, section := range sections {
		g.Go(func() error {
			return ss.Get(ctx, key, section)
		})
	}
	return g.Wait()
}

// waitIO blocks until the limiter admits n bytes, reserving in
// burst-sized slices for blobs larger than the burst.
func (ss *SectionStore) waitIO(ctx context.Context, n int) error {
	if ss.limiter == nil {
		return nil
	}
	burst := ss.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := ss.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
