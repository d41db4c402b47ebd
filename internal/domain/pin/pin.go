// Package pin models the fixed 4-digit numeric PIN space.
package pin

import (
	"context"
	"fmt"

	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
)

// Size is the number of candidates in the space.
const Size = consts.PINSpaceSize

// Format renders n as a zero-padded 4-digit PIN.
func Format(n int) (string, error) {
	if n < 0 || n >= Size {
		return "", fmt.Errorf("%w: %d", sharedErrors.ErrInvalidPIN, n)
	}
	return fmt.Sprintf("%0*d", consts.PINWidth, n), nil
}

// AttemptFunc tests one candidate. Returning stop=true ends the search after
// this candidate; a non-nil error aborts it.
type AttemptFunc func(ctx context.Context, pin string) (stop bool, err error)

// Each walks the space in ascending order, 0000 first. It returns the number
// of candidates tried and the first error from fn or the context.
func Each(ctx context.Context, fn AttemptFunc) (int, error) {
	tried := 0
	for n := 0; n < Size; n++ {
		if err := ctx.Err(); err != nil {
			return tried, err
		}
		candidate, _ := Format(n)
		tried++
		stop, err := fn(ctx, candidate)
		if err != nil {
			return tried, err
		}
		if stop {
			return tried, nil
		}
	}
	return tried, nil
}
