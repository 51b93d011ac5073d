package leave

import "strconv"

const (
	DefaultRequestIDPrefix = "LR"
	DefaultRequestIDSeed   = 1000
)

// Sequence hands out request ids of the form prefix+n with n strictly
// increasing from seed+1. It is not safe for concurrent use on its own; the
// Registry guards it.
type Sequence struct {
	prefix string
	last   int
}

func NewSequence(prefix string, seed int) *Sequence {
	if prefix == "" {
		prefix = DefaultRequestIDPrefix
	}
	if seed < 0 {
		seed = DefaultRequestIDSeed
	}
	return &Sequence{prefix: prefix, last: seed}
}

func (s *Sequence) Next() string {
	s.last++
	return s.prefix + strconv.Itoa(s.last)
}
