// Package credfile reads the obfuscated credential file used at the packing
// station: hex lines whose bytes are XOR-ed with a rolling key and whose
// fields are windows-1250 text separated by the 0x15 control byte.
//
// The rolling key is an obfuscation layer only. It is derived from the line
// length and carries no secret.
package credfile

const (
	keyModulus = 32
	keyStep    = 5
	keyMask    = 0x06
)

// rollingKey yields the per-byte key for a line of a given length.
type rollingKey struct {
	k byte
}

func newRollingKey(n int) *rollingKey {
	return &rollingKey{k: byte(n % keyModulus)}
}

// next returns the current key value and advances the state.
func (r *rollingKey) next() byte {
	k := r.k
	r.k = (r.k + keyStep) % keyModulus
	return k
}

// Transform applies the rolling-key XOR to b and returns a new slice.
// The transform is its own inverse: Transform(Transform(b)) == b.
func Transform(b []byte) []byte {
	out := make([]byte, len(b))
	key := newRollingKey(len(b))
	for i, c := range b {
		out[i] = c ^ (key.next() ^ keyMask)
	}
	return out
}
