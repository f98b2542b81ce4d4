package contracts

import "errors"

// Per-ticker missing-data conditions. These are ordinary "no result"
// outcomes: callers skip the ticker, they never abort a batch.
var (
	// ErrEmptySeries means the provider returned no bars at all
	ErrEmptySeries = errors.New("price series is empty")

	// ErrInsufficientData means too few bars to compute any score
	ErrInsufficientData = errors.New("insufficient price history")

	// ErrNoData means the provider has nothing for the ticker
	ErrNoData = errors.New("no data for ticker")
)
