package instancegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridot/gridutil"
	"github.com/katalvlaran/gridot/instancegen"
)

func TestRandomSupplyBalancesAndSums(t *testing.T) {
	xDim := gridutil.Pos{4, 4}
	yDim := gridutil.Pos{4, 4}

	inst, err := instancegen.Random(xDim, yDim, instancegen.WithSeed(1))
	require.NoError(t, err)
	require.Len(t, inst.Supply, 16+16)

	var supplySum, demandSum int64
	for i := 0; i < 16; i++ {
		assert.GreaterOrEqual(t, inst.Supply[i], int64(0))
		supplySum += inst.Supply[i]
	}
	for i := 16; i < 32; i++ {
		assert.LessOrEqual(t, inst.Supply[i], int64(0))
		demandSum += inst.Supply[i]
	}
	assert.Equal(t, supplySum, -demandSum)
	assert.Equal(t, int64((16+16)*1000), supplySum)
}

func TestRandomIsDeterministicForFixedSeed(t *testing.T) {
	xDim := gridutil.Pos{3, 3}
	yDim := gridutil.Pos{3, 3}

	a, err := instancegen.Random(xDim, yDim, instancegen.WithSeed(42))
	require.NoError(t, err)
	b, err := instancegen.Random(xDim, yDim, instancegen.WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, a.Supply, b.Supply)
}

func TestRandomDiffersAcrossSeeds(t *testing.T) {
	xDim := gridutil.Pos{5, 5}
	yDim := gridutil.Pos{5, 5}

	a, err := instancegen.Random(xDim, yDim, instancegen.WithSeed(1))
	require.NoError(t, err)
	b, err := instancegen.Random(xDim, yDim, instancegen.WithSeed(2))
	require.NoError(t, err)

	assert.NotEqual(t, a.Supply, b.Supply)
}

func TestWithDensityPanicsOutsideUnitRange(t *testing.T) {
	assert.Panics(t, func() { instancegen.WithDensity(0) })
	assert.Panics(t, func() { instancegen.WithDensity(1.5) })
}

func TestWithRandPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { instancegen.WithRand(nil) })
}

func TestRandomRejectsInvalidDim(t *testing.T) {
	_, err := instancegen.Random(gridutil.Pos{}, gridutil.Pos{4}, instancegen.WithSeed(0))
	assert.Error(t, err)
}
