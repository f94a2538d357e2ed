package marketplace

import (
	"fmt"
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Weekday represents a day of the week in service configurations
type Weekday string

const (
	WeekdayMonday    Weekday = "MON"
	WeekdayTuesday   Weekday = "TUE"
	WeekdayWednesday Weekday = "WED"
	WeekdayThursday  Weekday = "THU"
	WeekdayFriday    Weekday = "FRI"
	WeekdaySaturday  Weekday = "SAT"
	WeekdaySunday    Weekday = "SUN"
)

// IsValid checks if the value is a valid Weekday
func (d Weekday) IsValid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	}
	return false
}

// String returns the string representation of Weekday
func (d Weekday) String() string {
	return string(d)
}

// WeekdayOf returns the Weekday for a calendar date
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return WeekdayMonday
	case time.Tuesday:
		return WeekdayTuesday
	case time.Wednesday:
		return WeekdayWednesday
	case time.Thursday:
		return WeekdayThursday
	case time.Friday:
		return WeekdayFriday
	case time.Saturday:
		return WeekdaySaturday
	default:
		return WeekdaySunday
	}
}

// ServiceConfiguration holds an operator organization's declared capabilities
// and constraints, consumed read-only by the matching filter. Every field
// except the org reference is optional; an unset field restricts nothing.
type ServiceConfiguration struct {
	shared.BaseAggregateRoot
	OrgID            uuid.UUID
	EnableJobFilters bool
	ServiceTypes     []ServiceType
	AvailableDays    []Weekday
	WorkdayStartHour *int
	WorkdayEndHour   *int
	BaseLatitude     *float64
	BaseLongitude    *float64
	ServiceRadiusKm  *decimal.Decimal
}

// NewServiceConfiguration creates a configuration with filtering disabled
// and no constraints
func NewServiceConfiguration(orgID uuid.UUID) (*ServiceConfiguration, error) {
	if orgID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}

	return &ServiceConfiguration{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrgID:             orgID,
		EnableJobFilters:  false,
	}, nil
}

// SetFiltersEnabled turns filter evaluation on or off.
// When disabled the operator is eligible for every job.
func (c *ServiceConfiguration) SetFiltersEnabled(enabled bool) {
	c.EnableJobFilters = enabled
	c.Touch()
}

// SetServiceTypes replaces the set of offered service types.
// An empty set means the operator restricts nothing by service type.
func (c *ServiceConfiguration) SetServiceTypes(types []ServiceType) error {
	for _, t := range types {
		if !t.IsValid() {
			return shared.NewDomainError("INVALID_SERVICE_TYPE", fmt.Sprintf("Unknown service type %q", t))
		}
	}

	c.ServiceTypes = types
	c.Touch()

	return nil
}

// SetAvailableDays replaces the set of available weekdays.
// An empty set means no day restriction.
func (c *ServiceConfiguration) SetAvailableDays(days []Weekday) error {
	for _, d := range days {
		if !d.IsValid() {
			return shared.NewDomainError("INVALID_WEEKDAY", fmt.Sprintf("Unknown weekday %q", d))
		}
	}

	c.AvailableDays = days
	c.Touch()

	return nil
}

// SetWorkdayHours sets the daily working window in hours of day
func (c *ServiceConfiguration) SetWorkdayHours(startHour, endHour int) error {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return shared.NewDomainError("INVALID_WORKDAY_HOURS", "Workday hours must satisfy 0 <= start < end <= 24")
	}

	c.WorkdayStartHour = &startHour
	c.WorkdayEndHour = &endHour
	c.Touch()

	return nil
}

// ClearWorkdayHours removes the working-hours restriction
func (c *ServiceConfiguration) ClearWorkdayHours() {
	c.WorkdayStartHour = nil
	c.WorkdayEndHour = nil
	c.Touch()
}

// SetServiceArea sets the base location and service radius restriction
func (c *ServiceConfiguration) SetServiceArea(lat, lng float64, radiusKm decimal.Decimal) error {
	point := valueobject.NewGeoPoint(lat, lng)
	if !point.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Base coordinates are outside valid bounds")
	}
	if radiusKm.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RADIUS", "Service radius must be positive")
	}

	c.BaseLatitude = &lat
	c.BaseLongitude = &lng
	c.ServiceRadiusKm = &radiusKm
	c.Touch()

	return nil
}

// ClearServiceArea removes the geographic restriction
func (c *ServiceConfiguration) ClearServiceArea() {
	c.BaseLatitude = nil
	c.BaseLongitude = nil
	c.ServiceRadiusKm = nil
	c.Touch()
}

// OffersServiceType reports whether the configuration offers the given
// service type. An empty set restricts nothing.
func (c *ServiceConfiguration) OffersServiceType(t ServiceType) bool {
	if len(c.ServiceTypes) == 0 {
		return true
	}
	for _, offered := range c.ServiceTypes {
		if offered == t {
			return true
		}
	}
	return false
}

// IsAvailableOn reports whether the configuration allows work on the given
// weekday. An empty set restricts nothing.
func (c *ServiceConfiguration) IsAvailableOn(day Weekday) bool {
	if len(c.AvailableDays) == 0 {
		return true
	}
	for _, available := range c.AvailableDays {
		if available == day {
			return true
		}
	}
	return false
}

// BaseLocation returns the operator base as a GeoPoint, if one is set and
// well-formed
func (c *ServiceConfiguration) BaseLocation() (valueobject.GeoPoint, bool) {
	if c.BaseLatitude == nil || c.BaseLongitude == nil {
		return valueobject.GeoPoint{}, false
	}
	point := valueobject.NewGeoPoint(*c.BaseLatitude, *c.BaseLongitude)
	if !point.IsValid() {
		return valueobject.GeoPoint{}, false
	}
	return point, true
}
