package ie

import (
	"errors"

	"pfcp-core/internal/pfcperr"
)

// ErrInvalidLength is returned when an IE's declared TLV length is
// inconsistent with the bytes actually present, including flag-gated IEs
// whose trailing fields don't match their flag byte. It is
// pfcperr.ErrInvalidLength.
var ErrInvalidLength = pfcperr.ErrInvalidLength

// ErrFieldNotPresent is returned by an accessor when the flag byte (or
// presence convention) for an optional field says it is absent.
var ErrFieldNotPresent = errors.New("ie: field not present")

// ErrWrongType is returned by an accessor called on an IE of the wrong
// Type, e.g. calling Cause() on a NodeID IE.
var ErrWrongType = errors.New("ie: accessor called on wrong IE type")
