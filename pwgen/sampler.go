package pwgen

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// maxSample is the largest bound Sample accepts: one byte of entropy per draw.
const maxSample = 256

// Sampler converts a stream of uniformly random bytes into unbiased integers.
// A Sampler holds no state besides its source and is safe for concurrent use
// if the source is.
type Sampler struct {
	src io.Reader
}

// NewSampler returns a Sampler reading from src. A nil src selects
// crypto/rand.Reader.
func NewSampler(src io.Reader) *Sampler {
	if src == nil {
		src = rand.Reader
	}
	return &Sampler{src: src}
}

// Sample returns a uniformly distributed integer in [0, max). max must be in
// [1, 256].
//
// Bytes at or above the largest multiple of max that fits in a byte are
// discarded and redrawn, so every residue is equally likely. At least half of
// all bytes are accepted for any max, so the loop ends after k draws with
// probability above 1-2^-k.
func (s *Sampler) Sample(max int) (int, error) {
	if max < 1 || max > maxSample {
		return 0, errors.Wrapf(ErrInvalidArgument, "sample bound %d outside [1, %d]", max, maxSample)
	}
	limit := maxSample - maxSample%max
	var buf [1]byte
	for {
		if _, err := io.ReadFull(s.src, buf[:]); err != nil {
			return 0, errors.Wrap(err, "could not read entropy")
		}
		b := int(buf[0])
		if b < limit {
			return b % max, nil
		}
	}
}
