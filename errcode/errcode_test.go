package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"transport_unavailable": TransportUnavailable,
		"io_error":              IO,
		"invalid_address":       InvalidAddress,
		"driver_load_error":     DriverLoad,
		"duplicate_address":     DuplicateAddress,
		"duplicate_type":        DuplicateType,
		"registry_sealed":       RegistrySealed,
		"no_matching_device":    NoMatchingDevice,
		"ambiguous_selector":    AmbiguousSelector,
		"invalid_selector":      InvalidSelector,
		"invalid_config":        InvalidConfig,
	}
	for want, c := range cases {
		assert.Equal(t, want, c.Error())
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("nack")
	wrapped := fmt.Errorf("outer: %w", Wrap(IO, "tx", cause))
	for _, c := range []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{IO, IO},
		{Wrap(DriverLoad, "populate", nil), DriverLoad},
		{cause, Error},
		{wrapped, IO},
		{fmt.Errorf("create: %w", DriverLoad), DriverLoad},
		{errors.Join(cause, Wrap(AmbiguousSelector, "create 0x60", nil)), AmbiguousSelector},
		{&E{C: DriverLoad, Err: IO}, DriverLoad},
	} {
		assert.Equal(t, c.want, Of(c.err), "Of(%v)", c.err)
	}
	assert.ErrorIs(t, wrapped, IO, "carried code through wrapping")
	assert.ErrorIs(t, wrapped, cause)
}

func TestEMessage(t *testing.T) {
	assert.EqualError(t, &E{C: IO, Op: "read 0x60", Msg: "nack"}, "read 0x60: io_error: nack")
	assert.EqualError(t, &E{C: Unsupported}, "unsupported")
}
