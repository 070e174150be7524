// Package gadget provisions a USB HID boot keyboard gadget through the
// kernel configfs tree. Creating the gadget and binding it to a UDC makes
// the function node (typically /dev/hidg0) appear; the engine only ever
// writes that node and never touches configfs itself.
package gadget

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultName is the gadget directory name under the configfs root.
	DefaultName = "stratapad"

	configFSRoot = "/sys/kernel/config/usb_gadget"
	udcClassDir  = "/sys/class/udc"

	// hid function attributes for a boot keyboard.
	hidProtocolKeyboard = "1"
	hidSubclassBoot     = "1"
	hidReportLength     = "8"
)

// Config describes the gadget identity written into configfs. Zero values
// fall back to the stratapad defaults.
type Config struct {
	Name         string
	UDC          string // USB device controller to bind; first available when empty
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	SerialNumber string
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.VendorID == 0 {
		c.VendorID = 0x1d6b // The Linux Foundation
	}
	if c.ProductID == 0 {
		c.ProductID = 0x0104 // Multifunction Composite Gadget
	}
	if c.Manufacturer == "" {
		c.Manufacturer = "stratapad"
	}
	if c.Product == "" {
		c.Product = "Stratagem Pad Keyboard"
	}
	if c.SerialNumber == "" {
		c.SerialNumber = "00000001"
	}
	return c
}

type tree struct {
	gadget   string
	strings  string
	config   string
	function string
	link     string
}

func layout(name string) tree {
	gadgetDir := filepath.Join(configFSRoot, name)
	return tree{
		gadget:   gadgetDir,
		strings:  filepath.Join(gadgetDir, "strings", "0x409"),
		config:   filepath.Join(gadgetDir, "configs", "c.1"),
		function: filepath.Join(gadgetDir, "functions", "hid.usb0"),
		link:     filepath.Join(gadgetDir, "configs", "c.1", "hid.usb0"),
	}
}

// Exists reports whether a gadget tree with the given name is present.
func Exists(name string) bool {
	if name == "" {
		name = DefaultName
	}
	_, err := os.Stat(filepath.Join(configFSRoot, name))
	return err == nil
}

// Create builds the configfs gadget tree and binds it to a UDC. It is
// idempotent: an already-bound gadget is left alone.
func Create(cfg Config, logger *slog.Logger) error {
	cfg = cfg.withDefaults()
	t := layout(cfg.Name)

	if _, err := os.Stat(configFSRoot); err != nil {
		return fmt.Errorf("configfs usb_gadget not available (is the libcomposite module loaded?): %w", err)
	}

	for _, dir := range []string{t.gadget, t.strings, t.config, t.function} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create gadget dir %s: %w", dir, err)
		}
	}

	idents := map[string]string{
		filepath.Join(t.gadget, "idVendor"):  fmt.Sprintf("0x%04x", cfg.VendorID),
		filepath.Join(t.gadget, "idProduct"): fmt.Sprintf("0x%04x", cfg.ProductID),
		filepath.Join(t.gadget, "bcdUSB"):    "0x0200",
		filepath.Join(t.gadget, "bcdDevice"): "0x0100",

		filepath.Join(t.strings, "serialnumber"): cfg.SerialNumber,
		filepath.Join(t.strings, "manufacturer"): cfg.Manufacturer,
		filepath.Join(t.strings, "product"):      cfg.Product,

		filepath.Join(t.config, "MaxPower"): "250",

		filepath.Join(t.function, "protocol"):      hidProtocolKeyboard,
		filepath.Join(t.function, "subclass"):      hidSubclassBoot,
		filepath.Join(t.function, "report_length"): hidReportLength,
	}
	for path, value := range idents {
		if err := writeAttr(path, []byte(value)); err != nil {
			return err
		}
	}
	if err := writeAttr(filepath.Join(t.function, "report_desc"), BootKeyboardDescriptor); err != nil {
		return err
	}

	if err := os.Symlink(t.function, t.link); err != nil && !os.IsExist(err) {
		return fmt.Errorf("link hid function into config: %w", err)
	}

	udc := cfg.UDC
	if udc == "" {
		found, err := firstUDC()
		if err != nil {
			return err
		}
		udc = found
	}

	bound, err := boundUDC(t.gadget)
	if err == nil && bound != "" {
		logger.Info("USB gadget already bound", "gadget", cfg.Name, "udc", bound)
		return nil
	}
	if err := writeAttr(filepath.Join(t.gadget, "UDC"), []byte(udc)); err != nil {
		return fmt.Errorf("bind gadget to UDC %s: %w", udc, err)
	}

	logger.Info("USB gadget provisioned", "gadget", cfg.Name, "udc", udc,
		"vendor", fmt.Sprintf("0x%04x", cfg.VendorID), "product", fmt.Sprintf("0x%04x", cfg.ProductID))
	return nil
}

// Remove unbinds the gadget from its UDC and tears the configfs tree down.
// A missing tree is not an error.
func Remove(name string, logger *slog.Logger) error {
	if name == "" {
		name = DefaultName
	}
	t := layout(name)

	if _, err := os.Stat(t.gadget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat gadget dir: %w", err)
	}

	var errs []error

	// Unbind first; an unbound gadget rejects directory removal.
	if err := writeAttr(filepath.Join(t.gadget, "UDC"), []byte("\n")); err != nil {
		errs = append(errs, err)
	}

	// configfs only permits rmdir on empty directories, innermost first. The
	// configs/, functions/ and strings/ group dirs go away with the gadget dir.
	if err := os.Remove(t.link); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("remove function link: %w", err))
	}
	for _, dir := range []string{t.config, t.function, t.strings, t.gadget} {
		if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", dir, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("USB gadget removed", "gadget", name)
	return nil
}

func writeAttr(path string, value []byte) error {
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return fmt.Errorf("write gadget attribute %s: %w", path, err)
	}
	return nil
}

func firstUDC() (string, error) {
	entries, err := os.ReadDir(udcClassDir)
	if err != nil {
		return "", fmt.Errorf("list UDCs: %w", err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no USB device controller found under %s", udcClassDir)
	}
	return entries[0].Name(), nil
}

func boundUDC(gadgetDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gadgetDir, "UDC"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
