package validation

// Option is one entry of a select control
type Option struct {
	Value string
	Label string
}

const (
	DiagnosisNSCLC = "nsclc"

	Yes = "yes"
	No  = "no"
)

var DiagnosisOptions = []Option{
	{DiagnosisNSCLC, "Non-small cell lung cancer (NSCLC)"},
	{"sclc", "Small cell lung cancer (SCLC)"},
	{"breast", "Breast cancer"},
	{"colorectal", "Colorectal cancer"},
	{"other", "Other"},
}

var StageOptions = []Option{
	{"stage1", "Stage I"},
	{"stage2", "Stage II"},
	{"stage3", "Stage III"},
	{"stage4", "Stage IV"},
	{"unknown", "I don't know"},
}

var YesNoOptions = []Option{
	{Yes, "Yes"},
	{No, "No"},
}
