package models

import "strings"

// Step1Input is the raw screening step as posted by the form
type Step1Input struct {
	Contact   string `json:"contact" form:"contact"`
	Age       string `json:"age" form:"age"`
	Diagnosis string `json:"diagnosis" form:"diagnosis"`
}

// Step2Input is the raw application step as posted by the form
type Step2Input struct {
	DiagnosisStage string `json:"diagnosisStage" form:"diagnosisStage"`
	RecentChemo    string `json:"recentChemo" form:"recentChemo"`
	CanTravel      string `json:"canTravel" form:"canTravel"`
}

// ScreeningRecord is captured once step 1 is valid and eligible
type ScreeningRecord struct {
	Contact   string `json:"contact"`
	Age       int    `json:"age"`
	Diagnosis string `json:"diagnosis"`
}

// ApplicationRecord holds the step 2 answers
type ApplicationRecord struct {
	DiagnosisStage string `json:"diagnosisStage"`
	RecentChemo    string `json:"recentChemo"`
	CanTravel      string `json:"canTravel"`
}

// FinalApplication is the merged payload sent on submission
type FinalApplication struct {
	ScreeningRecord
	ApplicationRecord
}

// Traits are the identify traits attached to the contact
type Traits struct {
	Age              int    `json:"age"`
	InitialDiagnosis string `json:"initialDiagnosis"`
}

// NewApplicationRecord trims the posted step 2 values
func NewApplicationRecord(in Step2Input) ApplicationRecord {
	return ApplicationRecord{
		DiagnosisStage: strings.TrimSpace(in.DiagnosisStage),
		RecentChemo:    strings.TrimSpace(in.RecentChemo),
		CanTravel:      strings.TrimSpace(in.CanTravel),
	}
}

// Merge builds the final application from both steps
func Merge(screening ScreeningRecord, application ApplicationRecord) FinalApplication {
	return FinalApplication{ScreeningRecord: screening, ApplicationRecord: application}
}
