package types

import "fmt"

// Odds is a payout multiplier expressed as an exact fraction in lowest
// terms, numerator > denominator >= 1. Stakes placed at odds o and at
// o.Inverted() imply probabilities summing to exactly 1; such odds are
// "coupled" and are the only ones the matcher will pair.
type Odds struct {
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

// NewOdds builds odds from a fraction, reducing it to lowest terms.
func NewOdds(numerator, denominator int64) (Odds, error) {
	if denominator < 1 {
		return Odds{}, fmt.Errorf("odds denominator must be >= 1, got %d", denominator)
	}
	if numerator <= denominator {
		return Odds{}, fmt.Errorf("odds must be greater than 1, got %d/%d", numerator, denominator)
	}

	g := gcd(numerator, denominator)

	return Odds{Numerator: numerator / g, Denominator: denominator / g}, nil
}

// MustOdds is NewOdds that panics; for constants and tests.
func MustOdds(numerator, denominator int64) Odds {
	o, err := NewOdds(numerator, denominator)
	if err != nil {
		panic(err)
	}

	return o
}

// Inverted returns the complementary odds n/(n-d): base probability
// d/n plus inverted base probability (n-d)/n is exactly 1.
func (o Odds) Inverted() Odds {
	inv, _ := NewOdds(o.Numerator, o.Numerator-o.Denominator)
	return inv
}

// IsInverseOf reports whether o and other are exact inverses of each
// other. Both directions are checked the way the original arithmetic
// does; for reduced fractions they coincide.
func (o Odds) IsInverseOf(other Odds) bool {
	return o == other.Inverted() && other == o.Inverted()
}

// IsZero reports an unset odds value.
func (o Odds) IsZero() bool { return o.Numerator == 0 }

// Apply multiplies a stake by the odds, flooring the result.
func (o Odds) Apply(a Asset) Asset {
	return a.MulFraction(o.Numerator, o.Denominator)
}

// Coup multiplies by the reciprocal fraction d/n. Applying Coup to a
// potential payout recovers the stake that produces it at these odds.
func (o Odds) Coup(a Asset) Asset {
	return a.MulFraction(o.Denominator, o.Numerator)
}

func (o Odds) String() string {
	return fmt.Sprintf("%d/%d", o.Numerator, o.Denominator)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
