package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparison(t *testing.T) {
	assert.Equal(t, "#stablehlo<comparison_direction GT>", CompareGT.ToStableHLO())
	assert.Equal(t, "#stablehlo<comparison_direction NE>", CompareNE.ToStableHLO())
	assert.Equal(t, "#stablehlo<comparison_type TOTALORDER>", CompareTotalOrder.ToStableHLO())
	assert.Equal(t, "LE", CompareLE.String())
	assert.Equal(t, "Unsigned", CompareUnsigned.String())
	assert.Equal(t, "ComparisonDirection(17)", ComparisonDirection(17).String())
	assert.Contains(t, ComparisonDirection(17).ToStableHLO(), "UNKNOWN")
}

func TestComparisonEnumer(t *testing.T) {
	direction, err := ComparisonDirectionString("gt")
	require.NoError(t, err)
	assert.Equal(t, CompareGT, direction)
	_, err = ComparisonDirectionString("Greater")
	require.Error(t, err)
	assert.Equal(t, []string{"EQ", "GE", "GT", "LE", "LT", "NE"}, ComparisonDirectionStrings())
	assert.False(t, ComparisonDirection(-1).IsAComparisonDirection())

	compareType, err := ComparisonTypeString("TotalOrder")
	require.NoError(t, err)
	assert.Equal(t, CompareTotalOrder, compareType)
	assert.Len(t, ComparisonTypeValues(), 4)
}
