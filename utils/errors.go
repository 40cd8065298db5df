package utils

import (
	"errors"
)

type KitError struct {
	Code        string
	Description string
	Details     string
}

var knownErrors = Set[string]{}

func NewKitError(code string, description string) KitError {
	if knownErrors.Has(code) {
		panic("Duplicate error: " + code)
	}
	knownErrors.Add(code)
	return KitError{
		Code:        code,
		Description: description,
	}
}

func (err KitError) Error() string {
	var text = err.Code
	if err.Description != "" {
		text = text + " - " + err.Description
	}
	if err.Details != "" {
		text = text + " : " + err.Details
	}
	return text
}

func (err KitError) Is(target error) bool {
	var kitErrorTarget KitError
	if errors.As(target, &kitErrorTarget) {
		return kitErrorTarget.Code == err.Code
	} else {
		return false
	}
}

func (err KitError) AddDetails(details string) KitError {
	if err.Details != "" {
		panic("Cannot re-add details to an error")
	}
	newErr := err
	newErr.Details = details
	return newErr
}
