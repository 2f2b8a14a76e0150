package paletted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelforge/paletted/bitarray"
	"github.com/voxelforge/paletted/palette"
)

// intRange returns an IndexList registering 0..n-1 as their own raw ids.
func intRange(n int) *palette.List[int] {
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	return palette.NewList(values...)
}

func TestNewFills(t *testing.T) {
	c, err := New(intRange(16), BlockStatesPolicy[int](), 16, 7)
	require.NoError(t, err)

	assert.Equal(t, 16, c.Size())
	assert.Equal(t, Config{Strategy: palette.StrategySingular}, c.Configuration())

	for i := 0; i < 16; i++ {
		v, ok := c.Get(i)
		require.True(t, ok)
		assert.Equal(t, 7, v)
	}

	_, ok := c.Get(16)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)
}

func TestNewRejectsBadSize(t *testing.T) {
	_, err := New(intRange(4), BlockStatesPolicy[int](), 0, 0)
	require.Error(t, err)
}

func TestSetGrowsThroughGenerations(t *testing.T) {
	const size = 64
	c, err := New(intRange(size), BlockStatesPolicy[int](), size, 0)
	require.NoError(t, err)

	// Every distinct value forces the palette through Singular, Array
	// and two BiMap widths; earlier cells must survive each rebuild.
	for i := 0; i < size; i++ {
		require.NoError(t, c.Set(i, i))
		for j := 0; j <= i; j++ {
			v, ok := c.Get(j)
			require.True(t, ok)
			require.Equal(t, j, v, "cell %d after inserting %d", j, i)
		}
	}

	assert.Equal(t, Config{Strategy: palette.StrategyBiMap, Bits: 6}, c.Configuration())
}

func TestSetOutOfRange(t *testing.T) {
	c, err := New(intRange(4), BlockStatesPolicy[int](), 8, 0)
	require.NoError(t, err)

	var ie *bitarray.IndexError
	require.ErrorAs(t, c.Set(8, 0), &ie)
	assert.Equal(t, 8, ie.Index)

	_, err = c.Swap(-1, 0)
	require.ErrorAs(t, err, &ie)
}

func TestSwap(t *testing.T) {
	c, err := New(intRange(16), BlockStatesPolicy[int](), 16, 3)
	require.NoError(t, err)

	// The insert of 5 forces a resize; the old value read back must
	// come from the content as it was before the rebuild.
	old, err := c.Swap(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, old)

	old, err = c.Swap(4, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, old)

	v, ok := c.Get(4)
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestCount(t *testing.T) {
	c, err := New(intRange(16), BlockStatesPolicy[int](), 16, 0)
	require.NoError(t, err)
	require.NoError(t, c.Set(3, 5))
	require.NoError(t, c.Set(7, 5))
	require.NoError(t, c.Set(9, 2))

	counts := make(map[int]int)
	c.Count(func(v, n int) { counts[v] = n })
	assert.Equal(t, map[int]int{0: 13, 5: 2, 2: 1}, counts)
}

func TestPolicyExhausted(t *testing.T) {
	stuck := PolicyFunc[int](func(palette.IndexList[int], int) Config {
		return Config{Strategy: palette.StrategyArray, Bits: 1}
	})
	c, err := New(intRange(8), stuck, 4, 0)
	require.NoError(t, err)

	require.NoError(t, c.Set(0, 1)) // second entry still fits
	err = c.Set(1, 2)               // third cannot, and the policy will not budge
	require.ErrorIs(t, err, ErrPolicyExhausted)

	// The failed set left the container untouched.
	v, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestDirectGeneration(t *testing.T) {
	const size = 512
	const distinct = 300
	c, err := New(intRange(distinct), BlockStatesPolicy[int](), size, 0)
	require.NoError(t, err)

	for i := 0; i < size; i++ {
		require.NoError(t, c.Set(i, i%distinct))
	}

	cfg := c.Configuration()
	assert.Equal(t, palette.StrategyDirect, cfg.Strategy)
	assert.Equal(t, 9, cfg.Bits)

	for i := 0; i < size; i++ {
		v, ok := c.Get(i)
		require.True(t, ok)
		require.Equal(t, i%distinct, v)
	}
}

func TestBitsFor(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {256, 8}, {257, 9}, {300, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BitsFor(tt.n), "n=%d", tt.n)
	}
}

func TestPolicies(t *testing.T) {
	ids := intRange(300)

	t.Run("BlockStates", func(t *testing.T) {
		p := BlockStatesPolicy[int]()
		assert.Equal(t, Config{Strategy: palette.StrategySingular}, p.Configuration(ids, 0))
		assert.Equal(t, Config{Strategy: palette.StrategyArray, Bits: 4}, p.Configuration(ids, 1))
		assert.Equal(t, Config{Strategy: palette.StrategyArray, Bits: 4}, p.Configuration(ids, 4))
		assert.Equal(t, Config{Strategy: palette.StrategyBiMap, Bits: 5}, p.Configuration(ids, 5))
		assert.Equal(t, Config{Strategy: palette.StrategyBiMap, Bits: 8}, p.Configuration(ids, 8))
		assert.Equal(t, Config{Strategy: palette.StrategyDirect, Bits: 9}, p.Configuration(ids, 9))
	})

	t.Run("Biomes", func(t *testing.T) {
		p := BiomesPolicy[int]()
		assert.Equal(t, Config{Strategy: palette.StrategySingular}, p.Configuration(ids, 0))
		assert.Equal(t, Config{Strategy: palette.StrategyArray, Bits: 2}, p.Configuration(ids, 2))
		assert.Equal(t, Config{Strategy: palette.StrategyArray, Bits: 3}, p.Configuration(ids, 3))
		assert.Equal(t, Config{Strategy: palette.StrategyDirect, Bits: 9}, p.Configuration(ids, 4))
	})
}
