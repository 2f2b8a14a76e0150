package paletted

import (
	"math/bits"

	"github.com/voxelforge/paletted/palette"
)

// BlockStatesPolicy returns the sizing profile for high-cardinality
// registries such as block states: Singular at width zero, a linear
// palette padded to 4 bits through width 4, a hashed palette through
// width 8, then Direct against the full registry.
func BlockStatesPolicy[T comparable]() Policy[T] {
	return PolicyFunc[T](func(ids palette.IndexList[T], requested int) Config {
		switch {
		case requested == 0:
			return Config{Strategy: palette.StrategySingular}
		case requested <= 4:
			return Config{Strategy: palette.StrategyArray, Bits: 4}
		case requested <= 8:
			return Config{Strategy: palette.StrategyBiMap, Bits: requested}
		default:
			return Config{Strategy: palette.StrategyDirect, Bits: BitsFor(ids.Len())}
		}
	})
}

// BiomesPolicy returns the sizing profile for low-cardinality registries
// such as biomes: Singular at width zero, a linear palette through width
// 3, then Direct.
func BiomesPolicy[T comparable]() Policy[T] {
	return PolicyFunc[T](func(ids palette.IndexList[T], requested int) Config {
		switch {
		case requested == 0:
			return Config{Strategy: palette.StrategySingular}
		case requested <= 3:
			return Config{Strategy: palette.StrategyArray, Bits: requested}
		default:
			return Config{Strategy: palette.StrategyDirect, Bits: BitsFor(ids.Len())}
		}
	})
}

// BitsFor returns the element width needed to address n distinct
// entries: ceil(log2(n)), and zero for n <= 1.
func BitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
