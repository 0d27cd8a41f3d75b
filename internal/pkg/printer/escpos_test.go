package printer_test

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"pos/internal/pkg/printer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	t.Run("starts with initialize", func(t *testing.T) {
		d := printer.NewDocument(0)
		assert.Equal(t, []byte{0x1B, '@'}, d.Bytes())
		assert.Equal(t, printer.Width58mm, d.Width())
	})

	t.Run("columns are right aligned by runes", func(t *testing.T) {
		d := printer.NewDocument(20)
		d.Columns("Café", "$5.00")

		line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{0x0A}))
		assert.Equal(t, "Café"+strings.Repeat(" ", 11)+"$5.00", line)
	})

	t.Run("long names are truncated", func(t *testing.T) {
		d := printer.NewDocument(12)
		d.Item(2, "Hamburguesa Clásica", "$25.00")

		line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{0x0A}))
		assert.Equal(t, "2x Ha $25.00", line)
	})

	t.Run("item without amount", func(t *testing.T) {
		d := printer.NewDocument(32)
		d.Item(3, "Tacos", "")
		assert.Contains(t, string(d.Bytes()), "3x Tacos\n")
	})

	t.Run("cut commands", func(t *testing.T) {
		d := printer.NewDocument(32).Cut()
		assert.True(t, bytes.HasSuffix(d.Bytes(), []byte{0x1D, 'V', 0x00}))
	})
}

func TestNew(t *testing.T) {
	_, err := printer.New("usb", "", "")
	require.Error(t, err)
	_, err = printer.New("network", "", "")
	require.Error(t, err)
	_, err = printer.New("laser", "", "")
	require.Error(t, err)

	p, err := printer.New("", "", "")
	require.NoError(t, err)
	require.NoError(t, p.Print(t.Context(), []byte("x")))
	assert.False(t, p.IsConnected(t.Context()))
}

func TestNetworkPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p := printer.NewNetwork(ln.Addr().String())
	require.NoError(t, p.Print(t.Context(), []byte("ticket")))

	assert.Equal(t, []byte("ticket"), <-received)
}
