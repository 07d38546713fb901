// Package dmi reads board identity strings from the platform.
package dmi

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is where the kernel exposes DMI identity.
const DefaultRoot = "/sys/class/dmi/id"

// Unknown replaces any value that cannot be read. It matches no device.
const Unknown = "unknown"

// Identity is the board identity used to pick an LED controller.
type Identity struct {
	BoardVendor string
	BoardName   string
	ProductName string
}

// Read loads the identity from root. Unreadable files yield Unknown.
func Read(root string) Identity {
	return Identity{
		BoardVendor: readValue(root, "board_vendor"),
		BoardName:   readValue(root, "board_name"),
		ProductName: readValue(root, "product_name"),
	}
}

func readValue(root, name string) string {
	b, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return Unknown
	}
	return strings.TrimSpace(string(b))
}
