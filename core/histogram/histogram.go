package histogram

import "math"

// Dense frequency counter for unsigned integer samples of a fixed bit
// depth, as shipped by microscopy cameras: 8 bit data gets 256 bins,
// 16 bit data gets 65536. Bin index == sample value, every bin is one
// value wide, so counts tabulate the data exactly and statistics can
// be answered from the table without keeping samples around.
// 12 bit cameras store to 16 bit containers, they use 16 here.
//
// A UIntHistogram is a plain value type with no locking. Parallel
// tallying is done by giving each worker its own histogram and folding
// the results together with Combine afterwards.

const (
	BitDepth8  = 8
	BitDepth16 = 16
)

type UIntHistogram struct {
	freq  []uint64
	count uint64
}

// NewEmpty - histogram with all-zero counts spanning the given bit
// depth, which must be 8 or 16
func NewEmpty(bits int) (*UIntHistogram, error) {
	if bits != BitDepth8 && bits != BitDepth16 {
		return nil, InvalidArgumentError{Name: "bit depth", Reason: "must be 8 or 16"}
	}
	return &UIntHistogram{freq: make([]uint64, 1<<bits)}, nil
}

// NewFromData - tallies data in a single pass. No histogram is created
// if any sample falls outside the bit depth's domain.
func NewFromData(bits int, data []uint16) (*UIntHistogram, error) {
	h, err := NewEmpty(bits)
	if err != nil {
		return nil, err
	}
	if err = h.Update(data); err != nil {
		return nil, err
	}
	return h, nil
}

// Update - adds the tally of data to the existing counts. The whole
// input is checked against the domain before any bin is touched, so on
// DomainError the histogram is exactly as it was.
func (h *UIntHistogram) Update(data []uint16) error {
	// Only domains narrower than the sample type can reject values
	if len(h.freq) <= math.MaxUint16 {
		max := uint16(len(h.freq) - 1)
		for _, v := range data {
			if v > max {
				return DomainError{Value: v, Bits: h.BitDepth()}
			}
		}
	}

	for _, v := range data {
		h.freq[v]++
	}
	h.count += uint64(len(data))
	return nil
}

// Combine - element-wise addition of other's counts into h. Both must
// span the same domain, checked before any mutation. other is never
// modified, and combining in any order ends in the same counts.
func (h *UIntHistogram) Combine(other *UIntHistogram) error {
	if len(h.freq) != len(other.freq) {
		return DomainMismatchError{Bins: len(h.freq), OtherBins: len(other.freq)}
	}

	for v, c := range other.freq {
		h.freq[v] += c
	}
	h.count += other.count
	return nil
}

// Count - total number of samples tallied, 0 for a fresh histogram
func (h *UIntHistogram) Count() uint64 {
	return h.count
}

// CountOf - how many times value was seen
func (h *UIntHistogram) CountOf(value uint16) uint64 {
	if int(value) >= len(h.freq) {
		return 0
	}
	return h.freq[value]
}

// Bins - size of the count table (== domain size)
func (h *UIntHistogram) Bins() int {
	return len(h.freq)
}

// BitDepth - 8 or 16, derived from the table size
func (h *UIntHistogram) BitDepth() int {
	bits := 0
	for n := len(h.freq); n > 1; n >>= 1 {
		bits++
	}
	return bits
}

// Min - smallest value seen
func (h *UIntHistogram) Min() (uint16, error) {
	if h.count == 0 {
		return 0, EmptyHistogramError{Stat: "min"}
	}
	for v, c := range h.freq {
		if c > 0 {
			return uint16(v), nil
		}
	}
	return 0, EmptyHistogramError{Stat: "min"}
}

// Max - largest value seen
func (h *UIntHistogram) Max() (uint16, error) {
	if h.count == 0 {
		return 0, EmptyHistogramError{Stat: "max"}
	}
	for v := len(h.freq) - 1; v >= 0; v-- {
		if h.freq[v] > 0 {
			return uint16(v), nil
		}
	}
	return 0, EmptyHistogramError{Stat: "max"}
}

// Mean - arithmetic mean straight from the tabulated counts
func (h *UIntHistogram) Mean() (float64, error) {
	if h.count == 0 {
		return 0, EmptyHistogramError{Stat: "mean"}
	}
	total := float64(0)
	for v, c := range h.freq {
		if c > 0 {
			total += float64(v) * float64(c)
		}
	}
	return total / float64(h.count), nil
}

// Std - population standard deviation, sqrt(E[X^2]-E[X]^2) from the
// two moments of the tabulated counts (denominator N, not N-1)
func (h *UIntHistogram) Std() (float64, error) {
	if h.count == 0 {
		return 0, EmptyHistogramError{Stat: "std"}
	}

	sum, sum2 := float64(0), float64(0)
	for v, c := range h.freq {
		if c == 0 {
			continue
		}
		fv, fc := float64(v), float64(c)
		sum += fv * fc
		sum2 += fv * fv * fc
	}

	n := float64(h.count)
	avg, avg2 := sum/n, sum2/n

	// Rounding can push the difference fractionally below zero when
	// all mass sits on one value
	d := avg2 - avg*avg
	if d < 0 {
		d = 0
	}
	return math.Sqrt(d), nil
}

// Quantile - the smallest value v whose cumulative count, divided by
// Count(), reaches q. A step function over the bins, no interpolation:
// for counts of [0 0 1 1 1 2], Quantile(0.5) is 1.
func (h *UIntHistogram) Quantile(q float64) (uint16, error) {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, InvalidArgumentError{Name: "quantile", Reason: "must be in range [0, 1]"}
	}
	if h.count == 0 {
		return 0, EmptyHistogramError{Stat: "quantile"}
	}

	cum := uint64(0)
	n := float64(h.count)
	for v, c := range h.freq {
		cum += c
		if float64(cum)/n >= q {
			return uint16(v), nil
		}
	}

	// cum/n reaches 1 at the last nonzero bin, so we can't get here
	return uint16(len(h.freq) - 1), nil
}
