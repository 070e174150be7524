package gadget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "stratapad", cfg.Name)
	assert.Equal(t, uint16(0x1d6b), cfg.VendorID)
	assert.Equal(t, uint16(0x0104), cfg.ProductID)
	assert.Equal(t, "stratapad", cfg.Manufacturer)
	assert.NotEmpty(t, cfg.Product)
	assert.NotEmpty(t, cfg.SerialNumber)
}

func TestConfigDefaultsKeepExplicitValues(t *testing.T) {
	cfg := Config{Name: "pad2", VendorID: 0x1234, ProductID: 0x5678, UDC: "fe980000.usb"}.withDefaults()

	assert.Equal(t, "pad2", cfg.Name)
	assert.Equal(t, uint16(0x1234), cfg.VendorID)
	assert.Equal(t, uint16(0x5678), cfg.ProductID)
	assert.Equal(t, "fe980000.usb", cfg.UDC)
}

func TestLayout(t *testing.T) {
	tr := layout("stratapad")

	assert.Equal(t, "/sys/kernel/config/usb_gadget/stratapad", tr.gadget)
	assert.Equal(t, "/sys/kernel/config/usb_gadget/stratapad/strings/0x409", tr.strings)
	assert.Equal(t, "/sys/kernel/config/usb_gadget/stratapad/configs/c.1", tr.config)
	assert.Equal(t, "/sys/kernel/config/usb_gadget/stratapad/functions/hid.usb0", tr.function)
	assert.Equal(t, "/sys/kernel/config/usb_gadget/stratapad/configs/c.1/hid.usb0", tr.link)
}

func TestBootKeyboardDescriptor(t *testing.T) {
	// The canonical boot keyboard descriptor is exactly 63 bytes and a
	// top-level keyboard application collection.
	assert.Len(t, BootKeyboardDescriptor, 63)
	assert.Equal(t, []byte{0x05, 0x01, 0x09, 0x06, 0xa1, 0x01}, BootKeyboardDescriptor[:6])
	assert.Equal(t, byte(0xc0), BootKeyboardDescriptor[len(BootKeyboardDescriptor)-1])
}
