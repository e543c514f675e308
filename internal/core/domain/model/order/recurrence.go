package order

import (
	"fmt"
	"time"

	"cropflow/internal/pkg/errs"
	"cropflow/internal/pkg/guard"
)

const (
	daysPerWeek = 7

	// defaultBiweeklyInterval is the week count used when a biweekly template
	// does not set one. The interval field exists only for the biweekly
	// frequency; do not generalize it into a periodicity model.
	defaultBiweeklyInterval = 2
)

// Frequency describes how often a recurring template generates orders.
type Frequency int

const (
	// FrequencyUnknown represents an invalid or undefined frequency.
	FrequencyUnknown Frequency = iota

	// Weekly generates an order every 7 days.
	Weekly

	// Biweekly generates an order every interval weeks (default 2).
	Biweekly

	// Monthly generates an order on the same day of month, clamped to the
	// month's length.
	Monthly
)

// getFrequencyStrings returns a map of Frequency values to their persisted names.
func getFrequencyStrings() map[Frequency]string {
	return map[Frequency]string{
		FrequencyUnknown: "unknown",
		Weekly:           "weekly",
		Biweekly:         "biweekly",
		Monthly:          "monthly",
	}
}

// Validate checks if the Frequency value is valid.
func (f Frequency) Validate() error {
	if f <= FrequencyUnknown || f > Monthly {
		return errs.NewValueIsInvalidErrorWithCause("frequency is invalid",
			fmt.Errorf("%d is not a valid frequency", f))
	}
	return nil
}

// String returns the persisted name of the frequency.
func (f Frequency) String() string {
	if s, ok := getFrequencyStrings()[f]; ok {
		return s
	}
	return "unknown"
}

// ErrRecurrenceIsNotConstructed is returned when RecurrenceSettings were not
// created via a constructor.
var ErrRecurrenceIsNotConstructed = errs.NewValueIsRequiredError(
	"recurrence settings must be created via NewRecurrenceSettings or RestoreRecurrenceSettings")

// RecurrenceSettings is the value object describing a recurring template's
// cadence: frequency, optional biweekly interval, the date window, and the
// next scheduled generation date.
//
// The next generation date is always computed from the schedule itself,
// never from wall-clock execution time, so late invocations cannot make the
// cadence drift.
type RecurrenceSettings struct { //nolint:recvcheck //using for validation
	frequency      Frequency
	interval       int
	startDate      time.Time
	endDate        *time.Time
	nextGeneration time.Time
	active         bool
	guard          guard.ConstructorGuard
}

// NewRecurrenceSettings creates settings for a newly converted template.
// The first generation is scheduled at startDate. A non-positive interval on
// a biweekly frequency defaults to 2 weeks; the interval is ignored for
// other frequencies.
func NewRecurrenceSettings(
	frequency Frequency,
	interval int,
	startDate time.Time,
	endDate *time.Time,
) (RecurrenceSettings, error) {
	return RestoreRecurrenceSettings(frequency, interval, startDate, endDate, startDate, true)
}

// RestoreRecurrenceSettings reconstructs settings from persistence.
func RestoreRecurrenceSettings(
	frequency Frequency,
	interval int,
	startDate time.Time,
	endDate *time.Time,
	nextGeneration time.Time,
	active bool,
) (RecurrenceSettings, error) {
	if err := frequency.Validate(); err != nil {
		return RecurrenceSettings{}, err
	}

	if startDate.IsZero() {
		return RecurrenceSettings{}, errs.NewValueIsRequiredError("startDate")
	}

	if nextGeneration.IsZero() {
		return RecurrenceSettings{}, errs.NewValueIsRequiredError("nextGenerationDate")
	}

	if endDate != nil && endDate.Before(startDate) {
		return RecurrenceSettings{}, errs.NewValueIsInvalidErrorWithCause("endDate",
			fmt.Errorf("end date %s precedes start date %s",
				endDate.Format(time.RFC3339), startDate.Format(time.RFC3339)))
	}

	if frequency == Biweekly && interval <= 0 {
		interval = defaultBiweeklyInterval
	}

	return RecurrenceSettings{
		frequency:      frequency,
		interval:       interval,
		startDate:      startDate,
		endDate:        endDate,
		nextGeneration: nextGeneration,
		active:         active,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the settings were properly constructed.
func (r RecurrenceSettings) Validate() error {
	return r.guard.Validate(ErrRecurrenceIsNotConstructed)
}

// Frequency returns the generation frequency.
func (r RecurrenceSettings) Frequency() Frequency { return r.frequency }

// Interval returns the biweekly week interval; zero for other frequencies
// unless one was stored.
func (r RecurrenceSettings) Interval() int { return r.interval }

// StartDate returns the first scheduled occurrence date.
func (r RecurrenceSettings) StartDate() time.Time { return r.startDate }

// EndDate returns the optional date after which no orders are generated.
func (r RecurrenceSettings) EndDate() *time.Time { return r.endDate }

// NextGenerationDate returns the next scheduled occurrence date.
func (r RecurrenceSettings) NextGenerationDate() time.Time { return r.nextGeneration }

// IsActive reports whether the template still generates orders.
func (r RecurrenceSettings) IsActive() bool { return r.active }

// IsDue reports whether an occurrence should be generated at now: the
// template is active, the next generation date is not in the future, and the
// occurrence does not fall past the end date.
func (r RecurrenceSettings) IsDue(now time.Time) bool {
	if !r.active || r.nextGeneration.After(now) {
		return false
	}
	if r.endDate != nil && r.nextGeneration.After(*r.endDate) {
		return false
	}
	return true
}

// NextOccurrenceAfter returns the occurrence that follows last on this
// cadence. Monthly cadences anchor on the start date's day of month and
// clamp to shorter months, so a template anchored on the 31st yields
// Feb 28/29 and returns to the 31st in March.
func (r RecurrenceSettings) NextOccurrenceAfter(last time.Time) time.Time {
	switch r.frequency {
	case Weekly:
		return last.AddDate(0, 0, daysPerWeek)
	case Biweekly:
		interval := r.interval
		if interval <= 0 {
			interval = defaultBiweeklyInterval
		}
		return last.AddDate(0, 0, interval*daysPerWeek)
	case Monthly:
		return nextMonthlyOccurrence(last, r.startDate.Day())
	default:
		return last
	}
}

// Advanced returns a copy of the settings with the next generation date
// moved one period forward from its scheduled value.
func (r RecurrenceSettings) Advanced() RecurrenceSettings {
	advanced := r
	advanced.nextGeneration = r.NextOccurrenceAfter(r.nextGeneration)
	return advanced
}

// Deactivated returns a copy of the settings that no longer generates orders.
func (r RecurrenceSettings) Deactivated() RecurrenceSettings {
	stopped := r
	stopped.active = false
	return stopped
}

// nextMonthlyOccurrence returns the instant one month after last, on
// anchorDay clamped to the target month's length. Time of day is preserved.
func nextMonthlyOccurrence(last time.Time, anchorDay int) time.Time {
	year, month, _ := last.Date()
	hour, minute, sec := last.Clock()

	firstOfNext := time.Date(year, month+1, 1, hour, minute, sec, last.Nanosecond(), last.Location())
	day := anchorDay
	if lastDay := daysInMonth(firstOfNext); day > lastDay {
		day = lastDay
	}

	return firstOfNext.AddDate(0, 0, day-1)
}

// daysInMonth returns the number of days in t's month.
func daysInMonth(t time.Time) int {
	year, month, _ := t.Date()
	return time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
