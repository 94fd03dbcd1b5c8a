package recurring

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Frequency is the cadence of a recurring order template.
type Frequency int

const (
	// FrequencyUnknown represents an invalid or undefined frequency.
	FrequencyUnknown Frequency = iota

	// Daily fires every day.
	Daily

	// Weekly fires on the template's day of week.
	Weekly

	// Monthly fires on the template's day of month.
	Monthly

	// Custom is a shop-managed cadence; the scheduler treats it as daily
	// until a dedicated rule exists.
	Custom
)

func getFrequencyStrings() map[Frequency]string {
	return map[Frequency]string{
		FrequencyUnknown: "UNKNOWN",
		Daily:            "DAILY",
		Weekly:           "WEEKLY",
		Monthly:          "MONTHLY",
		Custom:           "CUSTOM",
	}
}

// FrequencyFromString parses a wire frequency name ("DAILY", "WEEKLY", ...).
func FrequencyFromString(s string) (Frequency, error) {
	for frequency, name := range getFrequencyStrings() {
		if frequency != FrequencyUnknown && name == s {
			return frequency, nil
		}
	}
	return FrequencyUnknown, errs.NewValueIsInvalidErrorWithCause("frequency",
		fmt.Errorf("%s is not a valid frequency", s))
}

// Validate checks if the Frequency value is valid.
func (f Frequency) Validate() error {
	if _, ok := getFrequencyStrings()[f]; !ok || f == FrequencyUnknown {
		return errs.NewValueIsInvalidErrorWithCause("frequency is invalid",
			fmt.Errorf("%d is not a valid frequency", f))
	}
	return nil
}

// String returns the wire name of the frequency.
func (f Frequency) String() string {
	if str, ok := getFrequencyStrings()[f]; ok {
		return str
	}
	return "UNKNOWN"
}
