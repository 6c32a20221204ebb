package histogram

import "fmt"

// The persisted form is a plain mapping: the domain descriptor and the
// ordered count table, where frequencies[v] is the count of value v.
// It round-trips exactly, integer counts in, identical integers out.
// Counts ride as signed 64 bit so a malformed negative count can be
// caught on decode instead of silently wrapping.

type Encoded struct {
	Bits        int     `json:"bits"`
	Frequencies []int64 `json:"frequencies"`
}

// Encode - snapshot of the histogram in its persisted form
func (h *UIntHistogram) Encode() Encoded {
	freq := make([]int64, len(h.freq))
	for v, c := range h.freq {
		freq[v] = int64(c)
	}
	return Encoded{Bits: h.BitDepth(), Frequencies: freq}
}

// Decode - validates the persisted form and rebuilds the histogram.
// The table length must match the declared bit depth exactly and every
// count must be non-negative, otherwise FormatError.
func Decode(enc Encoded) (*UIntHistogram, error) {
	if enc.Bits != BitDepth8 && enc.Bits != BitDepth16 {
		return nil, FormatError{Reason: fmt.Sprintf("unsupported bit depth %v", enc.Bits)}
	}
	if want := 1 << enc.Bits; len(enc.Frequencies) != want {
		return nil, FormatError{Reason: fmt.Sprintf("expected %v frequencies for %v bit domain, got %v", want, enc.Bits, len(enc.Frequencies))}
	}

	h := &UIntHistogram{freq: make([]uint64, len(enc.Frequencies))}
	for v, c := range enc.Frequencies {
		if c < 0 {
			return nil, FormatError{Reason: fmt.Sprintf("negative count %v for value %v", c, v)}
		}
		h.freq[v] = uint64(c)
		h.count += uint64(c)
	}
	return h, nil
}
