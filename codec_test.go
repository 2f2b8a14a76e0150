package paletted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelforge/paletted/palette"
)

func roundTrip(t *testing.T, c *Container[int], ids palette.IndexList[int], policy Policy[int]) *Container[int] {
	t.Helper()

	data, err := c.MarshalBinary()
	require.NoError(t, err)

	decoded, err := New(ids, policy, c.Size(), 0)
	require.NoError(t, err)
	require.NoError(t, decoded.UnmarshalBinary(data))

	for i := 0; i < c.Size(); i++ {
		want, ok := c.Get(i)
		require.True(t, ok)
		got, ok := decoded.Get(i)
		require.True(t, ok)
		require.Equal(t, want, got, "cell %d", i)
	}

	// The decoded container encodes to the identical bytes.
	again, err := decoded.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, data, again)

	return decoded
}

func TestEncodeSingular(t *testing.T) {
	ids := intRange(64)
	policy := BlockStatesPolicy[int]()
	c, err := New(ids, policy, 16, 36)
	require.NoError(t, err)

	data, err := c.MarshalBinary()
	require.NoError(t, err)

	// width 0, raw id 36, zero words.
	assert.Equal(t, []byte{0, 36, 0}, data)

	decoded := roundTrip(t, c, ids, policy)
	v, ok := decoded.Get(0)
	require.True(t, ok)
	assert.Equal(t, 36, v)
	assert.Equal(t, Config{Strategy: palette.StrategySingular}, decoded.Configuration())
}

func TestEncodeArrayGeneration(t *testing.T) {
	ids := intRange(64)
	policy := BlockStatesPolicy[int]()
	c, err := New(ids, policy, 16, 0)
	require.NoError(t, err)
	for i, v := range []int{5, 9, 5, 13, 0, 21} {
		require.NoError(t, c.Set(i, v))
	}
	require.Equal(t, palette.StrategyArray, c.Configuration().Strategy)

	decoded := roundTrip(t, c, ids, policy)
	assert.Equal(t, Config{Strategy: palette.StrategyArray, Bits: 4}, decoded.Configuration())
}

func TestEncodeBiMapGeneration(t *testing.T) {
	ids := intRange(64)
	policy := BlockStatesPolicy[int]()
	c, err := New(ids, policy, 64, 0)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, c.Set(i, i))
	}
	require.Equal(t, palette.StrategyBiMap, c.Configuration().Strategy)

	decoded := roundTrip(t, c, ids, policy)
	assert.Equal(t, Config{Strategy: palette.StrategyBiMap, Bits: 5}, decoded.Configuration())
}

func TestEncodeDirectGeneration(t *testing.T) {
	const size = 512
	ids := intRange(300)
	policy := BlockStatesPolicy[int]()
	c, err := New(ids, policy, size, 0)
	require.NoError(t, err)
	for i := 0; i < size; i++ {
		require.NoError(t, c.Set(i, i%300))
	}
	require.Equal(t, palette.StrategyDirect, c.Configuration().Strategy)

	decoded := roundTrip(t, c, ids, policy)
	assert.Equal(t, palette.StrategyDirect, decoded.Configuration().Strategy)
}

func TestDecodeErrors(t *testing.T) {
	ids := intRange(64)
	policy := BlockStatesPolicy[int]()

	fresh := func(t *testing.T) *Container[int] {
		c, err := New(ids, policy, 16, 0)
		require.NoError(t, err)
		return c
	}

	t.Run("Empty", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary(nil)
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("MissingPalette", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary([]byte{0})
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("UnknownRawID", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary([]byte{0, 100, 0})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("WordCountForEmpty", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary([]byte{0, 36, 1})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("WrongWordCount", func(t *testing.T) {
		// Width 4 over 16 cells needs exactly one word.
		err := fresh(t).UnmarshalBinary([]byte{4, 1, 36, 2})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("TruncatedWords", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary([]byte{4, 1, 36, 1, 0xDE, 0xAD})
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("PaletteCountOverCapacity", func(t *testing.T) {
		err := fresh(t).UnmarshalBinary([]byte{4, 17})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("TrailingBytes", func(t *testing.T) {
		good, err := fresh(t).MarshalBinary()
		require.NoError(t, err)
		err = fresh(t).UnmarshalBinary(append(good, 0))
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("GoodInputSanity", func(t *testing.T) {
		c := fresh(t)
		require.NoError(t, c.UnmarshalBinary([]byte{0, 36, 0}))
		v, ok := c.Get(5)
		require.True(t, ok)
		assert.Equal(t, 36, v)
	})
}

// A decode failure must leave the previous generation in place.
func TestDecodeFailureKeepsState(t *testing.T) {
	ids := intRange(64)
	policy := BlockStatesPolicy[int]()
	c, err := New(ids, policy, 16, 7)
	require.NoError(t, err)

	require.Error(t, c.UnmarshalBinary([]byte{0, 100, 0}))

	v, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, 7, v)
}
