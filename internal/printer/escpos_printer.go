package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/retry"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control sequences
var (
	escInit        = []byte{0x1b, 0x40}
	escCodePage850 = []byte{0x1b, 0x74, 0x02}
	escAlignCenter = []byte{0x1b, 0x61, 0x01}
	escBoldOn      = []byte{0x1b, 0x45, 0x01}
	escBoldOff     = []byte{0x1b, 0x45, 0x00}
	escDoubleOn    = []byte{0x1d, 0x21, 0x11}
	escDoubleOff   = []byte{0x1d, 0x21, 0x00}
	escFeedAndCut  = []byte{0x1b, 0x64, 0x04, 0x1d, 0x56, 0x00}
)

// ESCPOSPrinter prints on a network thermal printer speaking raw ESC/POS,
// usually on TCP port 9100. A connection is opened per ticket so a lost
// link only affects the ticket being printed.
type ESCPOSPrinter struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewESCPOSPrinter creates a new ESC/POS network printer
func NewESCPOSPrinter(cfg *Config) (*ESCPOSPrinter, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, fmt.Errorf("printer address is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ESCPOSPrinter{
		addr:    cfg.Addr,
		timeout: timeout,
		dialer:  net.Dialer{Timeout: timeout},
	}, nil
}

// PrintTicket sends one rendered ticket to the device
func (p *ESCPOSPrinter) PrintTicket(ctx context.Context, ticket domain.Ticket) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return deviceError(ctx, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return deviceError(ctx, err)
	}

	if _, err := conn.Write(RenderTicket(ticket)); err != nil {
		return deviceError(ctx, err)
	}
	return nil
}

// deviceError wraps a transport failure. Once ctx is done another attempt
// cannot succeed, so the error is marked permanent.
func deviceError(ctx context.Context, err error) error {
	err = fmt.Errorf("%w: %v", ErrPrinterUnavailable, err)
	if ctx.Err() != nil {
		return retry.Permanent(err)
	}
	return err
}

// RenderTicket lays out a ticket as ESC/POS bytes. Text is sent in code
// page 850, which the printer is switched to right after init; runes
// outside it print as the substitute character.
func RenderTicket(ticket domain.Ticket) []byte {
	eventName := ticket.EventName
	if eventName == "" {
		eventName = domain.DefaultEventName
	}

	w := &ticketWriter{enc: encoding.ReplaceUnsupported(charmap.CodePage850.NewEncoder())}
	w.b.Write(escInit)
	w.b.Write(escCodePage850)
	w.b.Write(escAlignCenter)

	w.b.Write(escBoldOn)
	w.line(eventName)
	w.b.Write(escBoldOff)
	w.line("--------------------------------")

	w.b.Write(escDoubleOn)
	w.line(ticket.ProductName)
	w.b.Write(escDoubleOff)
	if ticket.Presentation != "" {
		w.line(ticket.Presentation)
	}

	w.line("")
	w.b.Write(escBoldOn)
	w.line("$ " + domain.FormatMoney(ticket.UnitPrice))
	w.b.Write(escBoldOff)
	w.line("--------------------------------")
	w.line("Gracias por su compra")

	w.b.Write(escFeedAndCut)
	return w.b.Bytes()
}

type ticketWriter struct {
	b   bytes.Buffer
	enc *encoding.Encoder
}

func (w *ticketWriter) line(s string) {
	out, err := w.enc.String(s)
	if err != nil {
		out = s
	}
	w.b.WriteString(out)
	w.b.WriteByte('\n')
}

// Name returns the printer driver name
func (p *ESCPOSPrinter) Name() string {
	return "escpos"
}

// Close does nothing; connections live for one ticket
func (p *ESCPOSPrinter) Close() error {
	return nil
}
