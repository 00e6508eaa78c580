package api

import "trial-screening/pkg/validation"

func validationFailure(msg string) validation.Verdict {
	return validation.Verdict{Kind: validation.KindInvalidFormat, Message: msg}
}

func validationOK() validation.Verdict {
	return validation.Valid()
}
