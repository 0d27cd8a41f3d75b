package catalog_test

import (
	"testing"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("normalizes color", func(t *testing.T) {
		c, err := catalog.NewCategory("Postres", "#ff00aa", "cake")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Postres", c.Name())
		assert.Equal(t, "#FF00AA", c.Color())
		assert.Equal(t, "cake", c.Icon())
	})

	t.Run("rejects bad name and color", func(t *testing.T) {
		_, err := catalog.NewCategory("", "red", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, catalog.Category{}.Validate(), catalog.ErrCategoryIsNotConstructed)
	})
}

func TestDefaultCategories(t *testing.T) {
	first := catalog.DefaultCategories()
	second := catalog.DefaultCategories()

	require.Len(t, first, 9)
	assert.Equal(t, "Hamburguesas", first[0].Name())
	assert.Equal(t, "#FF6B6B", first[0].Color())
	for i := range first {
		assert.True(t, first[i].ID().IsEqual(second[i].ID()), "stable id for %s", first[i].Name())
	}
}
