package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five-field format ("minute hour dom month dow")
// plus descriptors such as "@every 5m".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule reports whether schedule can be scheduled by robfig/cron.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone reports whether tz is a loadable IANA zone name.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) > max (%d)", min, max)
	}
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidateDuration checks min <= d <= max.
func ValidateDuration(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) > max (%v)", min, max)
	}
	if d < min || d > max {
		return fmt.Errorf("duration %v out of range [%v, %v]", d, min, max)
	}
	return nil
}

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}
