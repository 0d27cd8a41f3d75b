package http

import (
	"fmt"
	"strings"

	"pos/internal/core/domain/model/kernel"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID kernel.UUID) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the order under BaseURL.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID kernel.UUID) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%s", strings.TrimRight(g.BaseURL, "/"), orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
