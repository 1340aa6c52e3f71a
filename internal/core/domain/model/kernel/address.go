package kernel

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is a delivery destination. Street and city are mandatory; the
// geo point is optional and, when present, must be valid.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	state      string
	postalCode string
	point      *GeoPoint
	guard      guard.ConstructorGuard
}

// NewAddress creates an Address. point may be nil.
func NewAddress(street, city, state, postalCode string, point *GeoPoint) (Address, error) {
	a := Address{
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setStreet(street), a.setCity(city), a.setPoint(point)); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate reports whether the address was built through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }

// Point returns the geo point of the address, or nil when it is unknown.
func (a Address) Point() *GeoPoint {
	if a.point == nil {
		return nil
	}
	p := *a.point
	return &p
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPoint(point *GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	p := *point
	a.point = &p
	return nil
}
