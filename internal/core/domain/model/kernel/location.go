package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

// LocationType is the kind of physical place an order is bound to.
type LocationType int

const (
	UnknownLocationType LocationType = iota
	// Table is a dining table ("mesa").
	Table
	// Delivery is a delivery slot ("domicilio").
	Delivery
	// Counter is a counter seat ("barra").
	Counter
)

// DefaultMaxLocationIndex is the number of locations of each type shown on
// the board when no other bound is configured.
const DefaultMaxLocationIndex = 14

var locationTypeCodes = map[LocationType]string{
	Table:    "mesa",
	Delivery: "domicilio",
	Counter:  "barra",
}

var locationTypeLabels = map[LocationType]string{
	Table:    "Mesa",
	Delivery: "Dom",
	Counter:  "Barra",
}

// LocationTypes lists the valid types in board order.
func LocationTypes() []LocationType {
	return []LocationType{Table, Delivery, Counter}
}

// LocationTypeFromString parses the stored code of a location type.
func LocationTypeFromString(s string) (LocationType, error) {
	for t, code := range locationTypeCodes {
		if code == s {
			return t, nil
		}
	}
	return UnknownLocationType, errs.NewValueIsInvalidErrorWithCause(
		"location type", fmt.Errorf("%q is not one of mesa, domicilio, barra", s))
}

func (t LocationType) Validate() error {
	if _, ok := locationTypeCodes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("location type", fmt.Errorf("%d is not a valid location type", t))
	}
	return nil
}

// String returns the stored code, e.g. "mesa".
func (t LocationType) String() string {
	if code, ok := locationTypeCodes[t]; ok {
		return code
	}
	return "unknown"
}

// Label is the short human label used on tickets and the board.
func (t LocationType) Label() string {
	if label, ok := locationTypeLabels[t]; ok {
		return label
	}
	return "?"
}

// ErrLocationIsNotConstructed is returned by Validate on a zero Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or ParseLocationID")

// Location is a physical place identified by "{type}_{index}", e.g. "mesa_3".
// It is an immutable value object; the zero value is invalid.
type Location struct { //nolint:recvcheck // setters use pointer receivers during construction
	typ   LocationType
	index int
	guard guard.ConstructorGuard
}

// NewLocation validates the type and that index lies in [1, maxIndex].
// A non-positive maxIndex falls back to DefaultMaxLocationIndex.
func NewLocation(typ LocationType, index int, maxIndex int) (Location, error) {
	if maxIndex <= 0 {
		maxIndex = DefaultMaxLocationIndex
	}

	loc := Location{guard: guard.NewConstructorGuard()}
	if err := errors.Join(loc.setType(typ), loc.setIndex(index, maxIndex)); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// ParseLocationID restores a Location from its identifier. Only positivity of
// the index is checked: records written under a larger board stay readable.
func ParseLocationID(id string) (Location, error) {
	sep := strings.LastIndex(id, "_")
	if sep <= 0 || sep == len(id)-1 {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"location", fmt.Errorf("%q is not of the form type_index", id))
	}

	typ, err := LocationTypeFromString(id[:sep])
	if err != nil {
		return Location{}, err
	}
	raw := id[sep+1:]
	index, err := strconv.Atoi(raw)
	if err != nil {
		return Location{}, errs.NewValueIsInvalidErrorWithCause("location index", err)
	}
	if strconv.Itoa(index) != raw {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"location index", fmt.Errorf("%q is not a canonical index", raw))
	}

	loc := Location{typ: typ, guard: guard.NewConstructorGuard()}
	if index < 1 {
		return Location{}, errs.NewValueIsOutOfRangeError("location index", index, 1, "unbounded")
	}
	loc.index = index
	return loc, nil
}

// AllLocations enumerates {typ}_1 .. {typ}_{maxIndex}.
func AllLocations(typ LocationType, maxIndex int) []Location {
	if maxIndex <= 0 {
		maxIndex = DefaultMaxLocationIndex
	}
	out := make([]Location, 0, maxIndex)
	for i := 1; i <= maxIndex; i++ {
		loc, err := NewLocation(typ, i, maxIndex)
		if err != nil {
			return nil
		}
		out = append(out, loc)
	}
	return out
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Type() LocationType {
	return l.typ
}

func (l Location) Index() int {
	return l.index
}

// ID is the stored identifier, e.g. "domicilio_2".
func (l Location) ID() string {
	if l.Validate() != nil {
		return ""
	}
	return fmt.Sprintf("%s_%d", l.typ, l.index)
}

// DisplayName is the label printed on tickets, e.g. "Dom 2".
func (l Location) DisplayName() string {
	if l.Validate() != nil {
		return ""
	}
	return fmt.Sprintf("%s %d", l.typ.Label(), l.index)
}

func (l Location) String() string {
	return l.ID()
}

// IsEqual reports whether both locations are valid and name the same place.
func (l Location) IsEqual(other Location) bool {
	if l.Validate() != nil || other.Validate() != nil {
		return false
	}
	return l.typ == other.typ && l.index == other.index
}

// Less orders locations by type, then index, as they appear on the board.
func (l Location) Less(other Location) bool {
	if l.typ != other.typ {
		return l.typ < other.typ
	}
	return l.index < other.index
}

func (l *Location) setType(typ LocationType) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	l.typ = typ
	return nil
}

func (l *Location) setIndex(index int, maxIndex int) error {
	if index < 1 || index > maxIndex {
		return errs.NewValueIsOutOfRangeError("location index", index, 1, maxIndex)
	}
	l.index = index
	return nil
}
