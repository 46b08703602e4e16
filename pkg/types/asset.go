package types

import "fmt"

// ChainSymbol is the currency every stake and refund is denominated in.
const ChainSymbol = "WGR"

// Asset is an integer monetary amount bound to a currency symbol.
// All arithmetic is integer-only; mixing symbols is an error.
type Asset struct {
	Amount int64  `json:"amount"`
	Symbol string `json:"symbol"`
}

// NewAsset creates an amount in the chain currency.
func NewAsset(amount int64) Asset {
	return Asset{Amount: amount, Symbol: ChainSymbol}
}

// Add returns a+o, failing on a symbol mismatch.
func (a Asset) Add(o Asset) (Asset, error) {
	if a.Symbol != o.Symbol {
		return Asset{}, fmt.Errorf("asset symbol mismatch: %s vs %s", a.Symbol, o.Symbol)
	}

	return Asset{Amount: a.Amount + o.Amount, Symbol: a.Symbol}, nil
}

// Sub returns a-o, failing on a symbol mismatch.
func (a Asset) Sub(o Asset) (Asset, error) {
	if a.Symbol != o.Symbol {
		return Asset{}, fmt.Errorf("asset symbol mismatch: %s vs %s", a.Symbol, o.Symbol)
	}

	return Asset{Amount: a.Amount - o.Amount, Symbol: a.Symbol}, nil
}

// MulFraction returns a*num/den with the quotient floored.
// The floor is a deliberate, reproducible tie-break, not an approximation.
func (a Asset) MulFraction(num, den int64) Asset {
	return Asset{Amount: a.Amount * num / den, Symbol: a.Symbol}
}

// Max returns the larger of a and o. Symbols must already agree.
func (a Asset) Max(o Asset) Asset {
	if o.Amount > a.Amount {
		return o
	}

	return a
}

// IsPositive reports whether the amount is strictly positive.
func (a Asset) IsPositive() bool { return a.Amount > 0 }

// IsZero reports whether the amount is zero.
func (a Asset) IsZero() bool { return a.Amount == 0 }

func (a Asset) String() string {
	return fmt.Sprintf("%d %s", a.Amount, a.Symbol)
}
