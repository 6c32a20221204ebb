package histogram

import "fmt"

// The error types callers need to tell apart: feeding samples that
// don't fit the declared domain, merging histograms of different
// domains, rejecting a malformed persisted form, asking statistics of
// an empty histogram, and out-of-range arguments. All are value types
// usable with errors.As.

// DomainError - a sample value does not fit the declared bit depth
type DomainError struct {
	Value uint16
	Bits  int
}

func (e DomainError) Error() string {
	return fmt.Sprintf("sample value %v outside %v bit domain", e.Value, e.Bits)
}

// DomainMismatchError - tried to combine histograms whose bin tables
// differ in size
type DomainMismatchError struct {
	Bins      int
	OtherBins int
}

func (e DomainMismatchError) Error() string {
	return fmt.Sprintf("cannot combine %v bin histogram with %v bin histogram", e.Bins, e.OtherBins)
}

// FormatError - a persisted histogram failed validation on decode
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return "invalid histogram encoding: " + e.Reason
}

// EmptyHistogramError - the requested statistic is undefined because
// nothing has been counted yet
type EmptyHistogramError struct {
	Stat string
}

func (e EmptyHistogramError) Error() string {
	return e.Stat + " undefined for empty histogram"
}

// InvalidArgumentError - an argument was outside its allowed range
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Name, e.Reason)
}
