package scope

import "math/bits"

// idSet is an immutable bitset of display-name ids.
type idSet []uint64

func (s idSet) has(id int) bool {
	word := id / 64
	return word < len(s) && s[word]&(1<<(uint(id)%64)) != 0
}

func (s idSet) with(id int) idSet {
	if s.has(id) {
		return s
	}
	word := id / 64
	n := len(s)
	if word >= n {
		n = word + 1
	}
	out := make(idSet, n)
	copy(out, s)
	out[word] |= 1 << (uint(id) % 64)
	return out
}

func (s idSet) union(o idSet) idSet {
	if len(o) == 0 {
		return s
	}
	if len(s) == 0 {
		return o
	}
	if len(s) < len(o) {
		s, o = o, s
	}
	out := make(idSet, len(s))
	copy(out, s)
	for i, w := range o {
		out[i] |= w
	}
	return out
}

// minAbsent returns the smallest id not in the set.
func (s idSet) minAbsent() int {
	for i, w := range s {
		if w != ^uint64(0) {
			return i*64 + bits.TrailingZeros64(^w)
		}
	}
	return len(s) * 64
}
