package ports

import (
	"context"

	"pos/internal/core/domain/model/order"
)

// KitchenTicketSender delivers a kitchen ticket for an order: the location,
// creation time and items with quantities.
type KitchenTicketSender interface {
	SendKitchenTicket(ctx context.Context, snapshot order.Snapshot) error
}

// ReceiptPrinter prints a customer receipt with prices and totals.
type ReceiptPrinter interface {
	PrintReceipt(ctx context.Context, snapshot order.Snapshot) error
}
