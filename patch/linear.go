package patch

import (
	"github.com/pkg/errors"
)

// resolveLinear maps a global index over n ordered collections to the owning
// collection and the local index within it, by accumulating lengths in
// order. The mapping is recomputed per call; n is expected to be small
// relative to the lengths involved.
func resolveLinear(n int, lengthAt func(int) int, idx int) (int, int, error) {
	if idx >= 0 {
		offset := 0
		for which := 0; which < n; which++ {
			length := lengthAt(which)
			if idx < offset+length {
				return which, idx - offset, nil
			}
			offset += length
		}
	}
	return 0, 0, errors.Wrapf(ErrIndexOutOfRange, "index %d over %d collections", idx, n)
}
