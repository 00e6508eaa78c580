package wizard

import (
	"trial-screening/pkg/models"
	"trial-screening/pkg/validation"
)

// MinEligibleAge is the youngest age accepted into the trial
const MinEligibleAge = 18

// EligibleStep1 holds for adults diagnosed with non-small cell lung cancer
func EligibleStep1(age int, diagnosis string) bool {
	return age >= MinEligibleAge && diagnosis == validation.DiagnosisNSCLC
}

// EligibleStep2 rejects recent chemotherapy and inability to travel
func EligibleStep2(app models.ApplicationRecord) bool {
	return app.RecentChemo != validation.Yes && app.CanTravel != validation.No
}
