package printer

import (
	"fmt"
	"strings"
)

// Type represents the printer driver
type Type string

const (
	TypeMock   Type = "mock"
	TypeESCPOS Type = "escpos"
)

// NewPrinter creates a printer based on the driver type
func NewPrinter(printerType string, config *Config) (Printer, error) {
	switch Type(strings.ToLower(printerType)) {
	case TypeMock, "":
		return NewMockPrinter(DefaultMockPrinterConfig()), nil

	case TypeESCPOS:
		return NewESCPOSPrinter(config)

	default:
		return nil, fmt.Errorf("unsupported printer type: %s", printerType)
	}
}
