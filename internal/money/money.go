package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Cents is a fixed-point currency amount in hundredths.
// All checkout arithmetic happens in cents; the DB boundary and JSON
// use the "123.45" string form (numeric column cast to text).
type Cents int64

// Parse accepts either comma or dot as the fractional separator
// ("10,50" and "10.50" are the same amount) and rounds to the nearest
// cent, half away from zero.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// normalize the Brazilian comma separator; reject mixed usage
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			return 0, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}

	return Cents(math.Round(f * 100)), nil
}

// ParsePositive is Parse with a strictly-positive requirement, used for
// tender amounts.
func ParsePositive(s string) (Cents, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if c <= 0 {
		return 0, ErrInvalidAmount
	}
	return c, nil
}

// String renders the amount with exactly two fractional digits, dot
// separated, matching postgres numeric(12,2)::text output.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *Cents) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		// tolerate bare numbers in stored session blobs
		s = string(b)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
