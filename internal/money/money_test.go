package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_CommaAndDotAgree(t *testing.T) {
	comma, err := Parse("10,50")
	require.NoError(t, err)

	dot, err := Parse("10.50")
	require.NoError(t, err)

	require.Equal(t, Cents(1050), comma)
	require.Equal(t, comma, dot)
}

func TestParse_RoundsToNearestCent(t *testing.T) {
	c, err := Parse("2.005")
	require.NoError(t, err)
	require.Equal(t, Cents(201), c)

	c, err = Parse("2.004")
	require.NoError(t, err)
	require.Equal(t, Cents(200), c)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "  ", "abc", "10,5.0", "1.2.3", "NaN", "Inf", "+Inf"} {
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalidAmount, "input %q", s)
	}
}

func TestParsePositive_RejectsZeroAndNegative(t *testing.T) {
	_, err := ParsePositive("0")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParsePositive("-3,10")
	require.ErrorIs(t, err, ErrInvalidAmount)

	c, err := ParsePositive("0,01")
	require.NoError(t, err)
	require.Equal(t, Cents(1), c)
}

func TestString(t *testing.T) {
	require.Equal(t, "10.50", Cents(1050).String())
	require.Equal(t, "0.05", Cents(5).String())
	require.Equal(t, "-2.25", Cents(-225).String())
	require.Equal(t, "0.00", Cents(0).String())
}
