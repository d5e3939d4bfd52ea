package qwiic

import (
	"strings"

	"qwiic-go/errcode"
)

// NoMatchingDeviceError reports a selector that matched no connected device.
type NoMatchingDeviceError struct {
	Selector Selector
}

func (e *NoMatchingDeviceError) Error() string {
	return string(errcode.NoMatchingDevice) + ": no connected device matches " + e.Selector.String()
}
func (e *NoMatchingDeviceError) Code() errcode.Code { return errcode.NoMatchingDevice }
func (e *NoMatchingDeviceError) Is(target error) bool {
	return target == errcode.NoMatchingDevice
}

// AmbiguousSelectorError reports a selector matching several connected
// drivers. Candidates lists every match; retry with Exact(c.Addr, c.Type).
type AmbiguousSelectorError struct {
	Selector   Selector
	Candidates []Entry
}

func (e *AmbiguousSelectorError) Error() string {
	var b strings.Builder
	b.WriteString(string(errcode.AmbiguousSelector))
	b.WriteString(": ")
	b.WriteString(e.Selector.String())
	b.WriteString(" matches ")
	for i, c := range e.Candidates {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}
func (e *AmbiguousSelectorError) Code() errcode.Code { return errcode.AmbiguousSelector }
func (e *AmbiguousSelectorError) Is(target error) bool {
	return target == errcode.AmbiguousSelector
}
