package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory or RestoreCategory constructor")

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category groups products on the billing screen. It carries presentation
// only: a name, a display color and an optional icon.
type Category struct {
	id    kernel.UUID
	name  string
	color string
	icon  string
	guard guard.ConstructorGuard
}

func NewCategory(name, color, icon string) (Category, error) {
	return RestoreCategory(kernel.NewUUID(), name, color, icon)
}

func RestoreCategory(id kernel.UUID, name, color, icon string) (Category, error) {
	c := Category{icon: strings.TrimSpace(icon), guard: guard.NewConstructorGuard()}
	name = strings.TrimSpace(name)

	var nameErr, colorErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("category name")
	}
	if !hexColor.MatchString(color) {
		colorErr = errs.NewValueIsInvalidErrorWithCause("category color", fmt.Errorf("%q is not #RRGGBB", color))
	}
	if err := errors.Join(id.Validate(), nameErr, colorErr); err != nil {
		return Category{}, err
	}

	c.id = id
	c.name = name
	c.color = strings.ToUpper(color)
	return c, nil
}

func (c Category) Validate() error {
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c Category) ID() kernel.UUID { return c.id }
func (c Category) Name() string    { return c.name }
func (c Category) Color() string   { return c.color }
func (c Category) Icon() string    { return c.icon }

var defaultCategories = []struct {
	name  string
	color string
	icon  string
}{
	{"Hamburguesas", "#FF6B6B", "burger"},
	{"Sandwiches", "#4ECDC4", "sandwich"},
	{"Hot Dogs", "#45B7D1", "hotdog"},
	{"Ensaladas", "#96CEB4", "salad"},
	{"Carnes", "#FFA500", "meat"},
	{"Bebidas", "#3498DB", "drink"},
	{"Adicionales", "#9B59B6", "plus"},
	{"Mazorcadas", "#E67E22", "corn"},
	{"Toppings", "#E74C3C", "topping"},
}

// DefaultCategories is the category set used when the store holds none.
// Identifiers are derived from the names and are stable across restarts.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		c, err := RestoreCategory(kernel.UUIDFromName("category:"+d.name), d.name, d.color, d.icon)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}
