package kernel_test

import (
	"testing"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want kernel.LocationType
	}{
		{"mesa", kernel.Table},
		{"domicilio", kernel.Delivery},
		{"barra", kernel.Counter},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := kernel.LocationTypeFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := kernel.LocationTypeFromString("terraza")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewLocation(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation(kernel.Table, 3, 14)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.Equal(t, kernel.Table, loc.Type())
		assert.Equal(t, 3, loc.Index())
		assert.Equal(t, "mesa_3", loc.ID())
		assert.Equal(t, "Mesa 3", loc.DisplayName())
	})

	t.Run("display names by type", func(t *testing.T) {
		dom, err := kernel.NewLocation(kernel.Delivery, 2, 14)
		require.NoError(t, err)
		bar, err := kernel.NewLocation(kernel.Counter, 14, 14)
		require.NoError(t, err)

		assert.Equal(t, "Dom 2", dom.DisplayName())
		assert.Equal(t, "Barra 14", bar.DisplayName())
	})

	t.Run("index out of range", func(t *testing.T) {
		for _, idx := range []int{0, -1, 15} {
			_, err := kernel.NewLocation(kernel.Table, idx, 14)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "index %d", idx)
		}
	})

	t.Run("default max applies when zero", func(t *testing.T) {
		_, err := kernel.NewLocation(kernel.Table, 14, 0)
		require.NoError(t, err)

		_, err = kernel.NewLocation(kernel.Table, 15, 0)
		require.Error(t, err)
	})

	t.Run("invalid type and index are both reported", func(t *testing.T) {
		_, err := kernel.NewLocation(kernel.UnknownLocationType, 99, 14)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestParseLocationID(t *testing.T) {
	t.Run("round trips through ID", func(t *testing.T) {
		loc, err := kernel.ParseLocationID("domicilio_7")

		require.NoError(t, err)
		assert.Equal(t, kernel.Delivery, loc.Type())
		assert.Equal(t, 7, loc.Index())
		assert.Equal(t, "domicilio_7", loc.ID())
	})

	t.Run("accepts indexes beyond the current board size", func(t *testing.T) {
		loc, err := kernel.ParseLocationID("mesa_20")

		require.NoError(t, err)
		assert.Equal(t, 20, loc.Index())
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		for _, in := range []string{"", "mesa", "mesa_", "_3", "mesa_x", "patio_1", "mesa_0"} {
			_, err := kernel.ParseLocationID(in)
			require.Error(t, err, in)
		}
	})

	t.Run("rejects non-canonical indexes", func(t *testing.T) {
		for _, in := range []string{"mesa_+3", "mesa_03", "barra_ 1", "domicilio_-0"} {
			_, err := kernel.ParseLocationID(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(kernel.Table, 1, 14)
	b, _ := kernel.ParseLocationID("mesa_1")
	c, _ := kernel.NewLocation(kernel.Counter, 1, 14)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(kernel.Location{}))
	assert.False(t, kernel.Location{}.IsEqual(kernel.Location{}))
}

func TestLocation_ZeroValue(t *testing.T) {
	var loc kernel.Location

	require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
	assert.Empty(t, loc.ID())
	assert.Empty(t, loc.DisplayName())
}

func TestAllLocations(t *testing.T) {
	locs := kernel.AllLocations(kernel.Counter, 4)

	require.Len(t, locs, 4)
	assert.Equal(t, "barra_1", locs[0].ID())
	assert.Equal(t, "barra_4", locs[3].ID())
	assert.Len(t, kernel.AllLocations(kernel.Table, 0), kernel.DefaultMaxLocationIndex)
}

func TestLocation_Less(t *testing.T) {
	mesa2, _ := kernel.NewLocation(kernel.Table, 2, 14)
	mesa10, _ := kernel.NewLocation(kernel.Table, 10, 14)
	dom1, _ := kernel.NewLocation(kernel.Delivery, 1, 14)

	assert.True(t, mesa2.Less(mesa10))
	assert.True(t, mesa10.Less(dom1))
	assert.False(t, dom1.Less(mesa2))
}
