// Package escpos renders kitchen tickets and customer receipts as ESC/POS
// documents and hands them to a thermal printer.
package escpos

import (
	"context"
	"fmt"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/printer"
)

const dateLayout = "02/01/2006 15:04"

var (
	_ ports.KitchenTicketSender = (*TicketPrinter)(nil)
	_ ports.ReceiptPrinter      = (*TicketPrinter)(nil)
)

type TicketPrinter struct {
	device printer.Printer
	width  int
	title  string
}

// NewTicketPrinter prints through device on paper of the given character
// width. title heads every receipt.
func NewTicketPrinter(device printer.Printer, width int, title string) *TicketPrinter {
	if title == "" {
		title = "RESTAURANTE"
	}
	return &TicketPrinter{device: device, width: width, title: title}
}

func (p *TicketPrinter) SendKitchenTicket(ctx context.Context, s order.Snapshot) error {
	return p.device.Print(ctx, KitchenTicket(s, p.width).Bytes())
}

func (p *TicketPrinter) PrintReceipt(ctx context.Context, s order.Snapshot) error {
	return p.device.Print(ctx, Receipt(s, p.width, p.title).Bytes())
}

// KitchenTicket lists location, time and quantities. Prices are left out.
func KitchenTicket(s order.Snapshot, width int) *printer.Document {
	d := printer.NewDocument(width)
	d.Align(printer.AlignCenter).Bold(true).Size(printer.FontDouble).Text("COCINA")
	d.Size(printer.FontNormal).Bold(false)
	if name := s.LocationName(); name != "" {
		d.Size(printer.FontWide).Text(name).Size(printer.FontNormal)
	}
	d.Text(s.CreatedAt.Format(dateLayout))
	d.Align(printer.AlignLeft).Separator('=')

	d.Bold(true)
	for _, it := range s.Items {
		d.Item(it.Quantity, it.Name, "")
	}
	d.Bold(false).Separator('=')
	if s.Persisted {
		d.Textf("Orden %s", shortID(s))
	}
	return d.Feed(3).PartialCut()
}

// Receipt is the customer copy with line subtotals and totals.
func Receipt(s order.Snapshot, width int, title string) *printer.Document {
	d := printer.NewDocument(width)
	d.Align(printer.AlignCenter).Bold(true).Text(title + " - RECIBO").Bold(false)
	d.Separator('=')
	d.Align(printer.AlignLeft)
	d.Textf("Fecha: %s", s.UpdatedAt.Format(dateLayout))
	if name := s.LocationName(); name != "" {
		d.Textf("Ubicación: %s", name)
	}
	d.Separator('=')

	for _, it := range s.Items {
		d.Item(it.Quantity, it.Name, it.Subtotal.Format())
	}

	d.Separator('=')
	d.Columns("Subtotal:", s.Subtotal.Format())
	d.Columns(fmt.Sprintf("IVA (%s):", s.TaxRate.Percent()), s.Tax.Format())
	d.Bold(true).Columns("TOTAL:", s.Total.Format()).Bold(false)
	d.Separator('=')
	d.Align(printer.AlignCenter).Text("¡Gracias por su visita!")
	return d.Feed(3).Cut()
}

func shortID(s order.Snapshot) string {
	id := s.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
