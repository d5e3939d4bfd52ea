package qwiic

import (
	"errors"
	"testing"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"
	"qwiic-go/i2cbus/i2ctest"
	"qwiic-go/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"
)

type fakeDevice struct {
	typ  string
	addr i2cbus.Addr
	bus  drivers.I2C
}

func (f *fakeDevice) Address() i2cbus.Addr { return f.addr }
func (f *fakeDevice) IsConnected() bool    { return i2cbus.Connected(f.bus, f.addr) }

func ctor(typ string) registry.Constructor {
	return func(bus drivers.I2C, a i2cbus.Addr) (registry.Device, error) {
		return &fakeDevice{typ: typ, addr: a, bus: bus}, nil
	}
}

func desc(typ string, addrs ...i2cbus.Addr) registry.Descriptor {
	return registry.Descriptor{Name: typ, Type: "Type" + typ, Addresses: addrs, New: ctor(typ)}
}

// fixture: {0x60: [A], 0x61: [B], 0x76: [C, D]}.
func fixture(t *testing.T, live ...uint16) (*Engine, *i2ctest.Bus) {
	t.Helper()
	reg := registry.New(registry.PolicyShared)
	reg.MustRegister(desc("A", 0x60))
	reg.MustRegister(desc("B", 0x61))
	reg.MustRegister(desc("C", 0x76))
	reg.MustRegister(desc("D", 0x76))
	fake := i2ctest.New(live...)
	return New(reg, i2cbus.New(fake)), fake
}

type row struct {
	Addr i2cbus.Addr
	Name string
}

func rows(es []Entry) []row {
	out := []row{}
	for _, e := range es {
		out = append(out, row{e.Addr, e.Name})
	}
	return out
}

func TestListConnectedFansOutInScanThenRegistryOrder(t *testing.T) {
	eng, _ := fixture(t, 0x76, 0x60, 0x20)

	got := eng.ListConnected()
	assert.Equal(t, []row{{0x60, "A"}, {0x76, "C"}, {0x76, "D"}}, rows(got))
	assert.Equal(t, "TypeD", got[2].Type)
}

func TestEndToEndResolution(t *testing.T) {
	eng, _ := fixture(t, 0x60, 0x76)

	_, err := eng.Create(At(0x61))
	var nm *NoMatchingDeviceError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "0x61", nm.Selector.String())

	_, err = eng.Create(At(0x76))
	var amb *AmbiguousSelectorError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []row{{0x76, "C"}, {0x76, "D"}}, rows(amb.Candidates))

	dev, err := eng.Create(Exact(0x76, "D"))
	require.NoError(t, err)
	assert.Equal(t, i2cbus.Addr(0x76), dev.Address())
	assert.Equal(t, "D", dev.(*fakeDevice).typ)
	assert.True(t, dev.IsConnected())

	dev, err = eng.Create(At(0x60))
	require.NoError(t, err)
	assert.Equal(t, "A", dev.(*fakeDevice).typ)
}

func TestAmbiguousAddressThenExactPair(t *testing.T) {
	reg := registry.New(registry.PolicyShared)
	reg.MustRegister(desc("DriverA", 0x60))
	reg.MustRegister(desc("DriverB", 0x58, 0x60))
	eng := New(reg, i2cbus.New(i2ctest.New(0x60)))

	_, err := eng.Create(At(0x60))
	assert.True(t, errors.Is(err, errcode.AmbiguousSelector))
	var amb *AmbiguousSelectorError
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.Candidates, 2)
	assert.Contains(t, err.Error(), `"DriverA"`)
	assert.Contains(t, err.Error(), `"DriverB"`)

	for i := 0; i < 3; i++ {
		dev, err := eng.Create(Exact(0x60, "DriverA"))
		require.NoError(t, err)
		assert.Equal(t, "DriverA", dev.(*fakeDevice).typ)
	}
	dev, err := eng.Create(Exact(0x60, "TypeDriverB"))
	require.NoError(t, err)
	assert.Equal(t, "DriverB", dev.(*fakeDevice).typ)
}

func TestNameSelectorMatchesNameOrType(t *testing.T) {
	eng, _ := fixture(t, 0x60, 0x61, 0x76)

	for _, sel := range []Selector{Named("B"), Named("TypeB")} {
		dev, err := eng.Create(sel)
		require.NoError(t, err, sel.String())
		assert.Equal(t, i2cbus.Addr(0x61), dev.Address())
	}
	_, err := eng.Create(Named("Z"))
	assert.Equal(t, errcode.NoMatchingDevice, errcode.Of(err))
}

func TestNameSelectorAmbiguousAcrossAddresses(t *testing.T) {
	reg := registry.New(registry.PolicyShared)
	reg.MustRegister(desc("BME", 0x76, 0x77))
	eng := New(reg, i2cbus.New(i2ctest.New(0x76, 0x77)))

	_, err := eng.Create(Named("BME"))
	var amb *AmbiguousSelectorError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []row{{0x76, "BME"}, {0x77, "BME"}}, rows(amb.Candidates))

	dev, err := eng.Create(Exact(0x77, "BME"))
	require.NoError(t, err)
	assert.Equal(t, i2cbus.Addr(0x77), dev.Address())
}

func TestEmptyScan(t *testing.T) {
	eng, _ := fixture(t)
	assert.Empty(t, eng.ListConnected())
	for _, sel := range []Selector{At(0x60), Named("A"), Exact(0x60, "A")} {
		_, err := eng.Create(sel)
		assert.Equal(t, errcode.NoMatchingDevice, errcode.Of(err), sel.String())
	}
}

func TestNoTransportDegradesToEmpty(t *testing.T) {
	reg := registry.New(registry.PolicyShared)
	reg.MustRegister(desc("A", 0x60))
	eng := New(reg, nil)

	assert.NotNil(t, eng.Scan())
	assert.Empty(t, eng.Scan())
	assert.Empty(t, eng.ListConnected())
	assert.False(t, eng.IsConnected(0x60))
	_, err := eng.Create(At(0x60))
	assert.True(t, errors.Is(err, errcode.NoMatchingDevice))
	assert.Len(t, eng.ListAvailable(), 1)
}

func TestConstructorErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("calibration read failed")
	reg := registry.New(registry.PolicyShared)
	reg.MustRegister(registry.Descriptor{
		Name: "Broken", Type: "broken", Addresses: []i2cbus.Addr{0x40},
		New: func(drivers.I2C, i2cbus.Addr) (registry.Device, error) { return nil, boom },
	})
	eng := New(reg, i2cbus.New(i2ctest.New(0x40)))

	_, err := eng.Create(At(0x40))
	assert.Same(t, boom, err)
}

func TestCreateRescansEveryCall(t *testing.T) {
	eng, fake := fixture(t, 0x60)

	_, err := eng.Create(At(0x60))
	require.NoError(t, err)
	fake.Detach(0x60)
	_, err = eng.Create(At(0x60))
	assert.Equal(t, errcode.NoMatchingDevice, errcode.Of(err))
}

func TestListAvailableDoesNotTouchBus(t *testing.T) {
	eng, fake := fixture(t)

	got := eng.ListAvailable(0x76, 0x60, 0x76, 0x10)
	assert.Equal(t, []row{{0x60, "A"}, {0x76, "C"}, {0x76, "D"}}, rows(got))
	assert.Len(t, eng.ListAvailable(), 4)
	assert.Zero(t, fake.Transactions())
}

func TestListAvailablePerAddressMatchesRegistry(t *testing.T) {
	eng, _ := fixture(t)
	for _, a := range i2cbus.All() {
		got := eng.ListAvailable(a)
		want := eng.Registry().Lookup(a)
		require.Len(t, got, len(want), a.String())
		for i := range want {
			assert.Equal(t, a, got[i].Addr)
			assert.Equal(t, want[i].Type, got[i].Type)
		}
	}
}

func TestCreateConnectedSkipsAmbiguous(t *testing.T) {
	eng, _ := fixture(t, 0x60, 0x61, 0x76)

	devs, err := eng.CreateConnected()
	require.Len(t, devs, 2)
	assert.Equal(t, i2cbus.Addr(0x60), devs[0].Address())
	assert.Equal(t, i2cbus.Addr(0x61), devs[1].Address())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcode.AmbiguousSelector))
	assert.Equal(t, errcode.AmbiguousSelector, errcode.Of(err), "code survives errors.Join")

	eng, _ = fixture(t, 0x60)
	devs, err = eng.CreateConnected()
	assert.NoError(t, err)
	assert.Len(t, devs, 1)
}

func TestCreateNilSelector(t *testing.T) {
	eng, _ := fixture(t, 0x60)
	_, err := eng.Create(nil)
	assert.Equal(t, errcode.InvalidSelector, errcode.Of(err))
}

func TestDefaultIsBuiltOnce(t *testing.T) {
	e := Default()
	require.NotNil(t, e)
	assert.Same(t, e, Default())
	assert.Same(t, registry.Default(), e.Registry())
}
