package kernel_test

import (
	"testing"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
		assert.Equal(t, "$10.01", m.Format())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money
		require.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
		require.NoError(t, kernel.ZeroMoney().Validate())
	})
}

func TestMoneyFromString(t *testing.T) {
	_, err := kernel.MoneyFromString("abc")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	m, err := kernel.MoneyFromString("12000")
	require.NoError(t, err)
	assert.Equal(t, "12000.00", m.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MustMoney("12.50")

	assert.Equal(t, "37.50", price.Mul(3).String())
	assert.True(t, price.Mul(0).IsZero())
	assert.Equal(t, "25.00", price.Add(price).String())
	assert.Equal(t, "6.25", price.DivInt(2).String())
	assert.True(t, price.DivInt(0).IsZero())
	assert.True(t, price.IsEqual(kernel.MustMoney("12.5")))
}

func TestTaxRate(t *testing.T) {
	t.Run("applies rate with cent rounding", func(t *testing.T) {
		rate, err := kernel.TaxRateFromString("0.16")
		require.NoError(t, err)

		assert.Equal(t, "16.00", kernel.MustMoney("100").MulRate(rate).String())
		assert.Equal(t, "1.99", kernel.MustMoney("12.45").MulRate(rate).String())
		assert.Equal(t, "16%", rate.Percent())
	})

	t.Run("empty string means no tax", func(t *testing.T) {
		rate, err := kernel.TaxRateFromString("")
		require.NoError(t, err)
		assert.True(t, rate.Value().IsZero())
	})

	t.Run("rejects rates outside [0, 1]", func(t *testing.T) {
		for _, in := range []string{"-0.1", "1.5"} {
			_, err := kernel.TaxRateFromString(in)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, in)
		}
	})
}
