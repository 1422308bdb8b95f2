package procon

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/gousb"

	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/errors"
)

const (
	vendorNintendo = 0x057e
)

// Product IDs the backend accepts. 0x2069 is the Pro Controller 2; the
// older IDs cover first-generation controllers and common clones that
// speak the same rumble protocol.
var productIDs = map[gousb.ID]bool{
	0x2009: true,
	0x2019: true,
	0x2069: true,
}

// Backend drives the HD rumble actuators of a Switch Pro Controller over
// USB. Discovery goes through gousb; rumble output is written to the
// controller's hidraw node, which the kernel exposes once the device
// enumerates.
type Backend struct {
	mu      sync.Mutex
	usbctx  *gousb.Context
	dev     *gousb.Device
	hid     *os.File
	counter byte
	opened  bool
}

// New creates an unopened Pro Controller backend.
func New() *Backend {
	return &Backend{}
}

// Open locates an attached controller and opens its hidraw node. It
// returns a not-supported error when no controller is attached, so
// callers can fall back to another backend.
func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.opened {
		return nil
	}

	ctx := gousb.NewContext()
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(vendorNintendo) && productIDs[desc.Product]
	})
	if err != nil && len(devs) == 0 {
		ctx.Close()
		return errors.DeviceFailure("scan USB bus", err)
	}
	if len(devs) == 0 {
		ctx.Close()
		return errors.NotSupported(errors.PhaseDevice, "no compatible controller attached")
	}

	// First match wins; close the rest.
	dev := devs[0]
	for _, d := range devs[1:] {
		d.Close()
	}

	hidPath, err := hidrawForUSB(int(dev.Desc.Bus), int(dev.Desc.Address))
	if err != nil {
		dev.Close()
		ctx.Close()
		return errors.DeviceFailure("resolve hidraw node", err)
	}

	hid, err := os.OpenFile(hidPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		dev.Close()
		ctx.Close()
		return errors.DeviceFailure(
			fmt.Sprintf("open %s (try running as root or add a udev rule)", hidPath), err)
	}

	b.usbctx = ctx
	b.dev = dev
	b.hid = hid
	b.counter = 0
	b.opened = true
	return nil
}

// Close silences the actuator and releases the USB handles.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.opened {
		return nil
	}

	// Best effort stop; the device may already be gone.
	_, _ = b.hid.Write(stopReport())

	err := b.hid.Close()
	b.dev.Close()
	b.usbctx.Close()

	b.hid = nil
	b.dev = nil
	b.usbctx = nil
	b.opened = false

	if err != nil {
		return errors.DeviceFailure("close hidraw node", err)
	}
	return nil
}

// WriteFrame encodes one rendered frame as a rumble output report.
func (b *Backend) WriteFrame(f device.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.opened {
		return errors.DeviceFailure("controller not open", nil)
	}

	report := rumbleReport(f, b.counter)
	b.counter = (b.counter + 1) & 0x0f

	n, err := b.hid.Write(report)
	if err != nil {
		return errors.DeviceFailure("write rumble report", err)
	}
	if n != len(report) {
		return errors.DeviceFailure(
			fmt.Sprintf("short write: %d/%d bytes", n, len(report)), nil)
	}
	return nil
}

// Reset sends the stop report, returning the actuators to rest.
func (b *Backend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.opened {
		return errors.DeviceFailure("controller not open", nil)
	}
	if _, err := b.hid.Write(stopReport()); err != nil {
		return errors.DeviceFailure("write stop report", err)
	}
	return nil
}

func (b *Backend) Capabilities() device.Capabilities {
	return device.Capabilities{SupportsHaptics: true}
}

// Available reports whether a compatible controller is attached, without
// keeping any handle open.
func Available() bool {
	ctx := gousb.NewContext()
	defer ctx.Close()

	found := false
	devs, _ := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if desc.Vendor == gousb.ID(vendorNintendo) && productIDs[desc.Product] {
			found = true
		}
		return false // inspect only, open nothing
	})
	for _, d := range devs {
		d.Close()
	}
	return found
}
