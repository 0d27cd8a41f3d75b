// Package printer writes ESC/POS byte streams to thermal printers attached
// over USB or the network.
package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Transport types accepted by New.
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// Printer sends a finished document to a device. Every Print opens and
// closes its own connection.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	IsConnected(ctx context.Context) bool
}

type usbPrinter struct {
	path string
}

// NewUSB writes to a device file such as /dev/usb/lp0.
func NewUSB(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetwork dials a raw TCP printer port, e.g. "192.168.1.100:9100".
func NewNetwork(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err = conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

type nullPrinter struct{}

// NewNull discards everything. Used when no printer is configured.
func NewNull() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) IsConnected(context.Context) bool    { return false }

// New picks the transport by type: "usb", "network", or "none"/"".
func New(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case TypeUSB:
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for type %q", TypeUSB)
		}
		return NewUSB(usbPath), nil
	case TypeNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for type %q", TypeNetwork)
		}
		return NewNetwork(address), nil
	case TypeNone, "":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network or none)", printerType)
	}
}
