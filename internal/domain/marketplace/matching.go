package marketplace

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ineligibility reason codes, stable identifiers consumed by the UI
const (
	ReasonServiceTypeMismatch  = "service_type_mismatch"
	ReasonUnavailableDay       = "unavailable_day"
	ReasonOutsideWorkingHours  = "outside_working_hours"
	ReasonOutsideServiceRadius = "outside_service_radius"
)

// Eligibility is the result of evaluating a job against an operator's
// service configuration
type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// eligible is the zero-reason positive result
func eligible() Eligibility {
	return Eligibility{Eligible: true}
}

// EvaluateJob decides whether a job should be shown to the operator described
// by cfg. It is a pure function: deterministic, no side effects.
//
// A nil configuration or one with filtering disabled passes everything.
// Otherwise the sub-checks are ANDed, and every reason that applies is
// collected rather than short-circuiting on the first failure. A sub-check
// whose configuration field is unset restricts nothing. The filter is
// advisory, not a security boundary: malformed location data on either side
// skips the geographic check instead of failing it.
func EvaluateJob(job *Job, cfg *ServiceConfiguration) Eligibility {
	if job == nil {
		return eligible()
	}
	if cfg == nil || !cfg.EnableJobFilters {
		return eligible()
	}

	var reasons []string

	if !cfg.OffersServiceType(job.ServiceType) {
		reasons = append(reasons, ReasonServiceTypeMismatch)
	}

	if !dateRangeIntersectsDays(job, cfg) {
		reasons = append(reasons, ReasonUnavailableDay)
	}

	if !windowWithinWorkday(job, cfg) {
		reasons = append(reasons, ReasonOutsideWorkingHours)
	}

	if !withinServiceRadius(job, cfg) {
		reasons = append(reasons, ReasonOutsideServiceRadius)
	}

	return Eligibility{Eligible: len(reasons) == 0, Reasons: reasons}
}

// dateRangeIntersectsDays reports whether at least one day of the job's date
// range falls on an available weekday
func dateRangeIntersectsDays(job *Job, cfg *ServiceConfiguration) bool {
	if len(cfg.AvailableDays) == 0 {
		return true
	}
	if job.DateTo.Before(job.DateFrom) {
		// Malformed range, treat as unrestricted rather than failing
		return true
	}

	// A range spanning a week or more covers every weekday
	if job.DateTo.Sub(job.DateFrom) >= 7*24*time.Hour {
		return true
	}

	for d := job.DateFrom; !d.After(job.DateTo); d = d.AddDate(0, 0, 1) {
		if cfg.IsAvailableOn(WeekdayOf(d)) {
			return true
		}
	}
	return false
}

// windowWithinWorkday reports whether the job's preferred time window fits
// inside the operator's workday hours. Jobs without a window, and
// configurations without workday hours, pass.
func windowWithinWorkday(job *Job, cfg *ServiceConfiguration) bool {
	if cfg.WorkdayStartHour == nil || cfg.WorkdayEndHour == nil {
		return true
	}
	if job.WindowStartHour == nil || job.WindowEndHour == nil {
		return true
	}
	return *job.WindowStartHour >= *cfg.WorkdayStartHour && *job.WindowEndHour <= *cfg.WorkdayEndHour
}

// withinServiceRadius reports whether the job site is within the operator's
// service radius. The check is skipped when either side lacks a well-formed
// location or no radius is configured.
func withinServiceRadius(job *Job, cfg *ServiceConfiguration) bool {
	if cfg.ServiceRadiusKm == nil {
		return true
	}
	base, ok := cfg.BaseLocation()
	if !ok {
		return true
	}
	site, ok := job.Location()
	if !ok {
		return true
	}

	distance := decimal.NewFromFloat(base.DistanceKm(site))
	return distance.LessThanOrEqual(*cfg.ServiceRadiusKm)
}
