// Package ledger wraps a Ledger hardware device as a transaction signer:
// a shared, invalidate-on-error device session plus an error taxonomy that
// maps raw transport failures to actionable recovery guidance.
package ledger

import (
	"errors"
	"strings"
)

// Error is a hardware-signer error. Callers distinguish it from all other
// failures with errors.As so the UI can show device-specific recovery
// guidance instead of a generic banner.
type Error struct {
	msg string
}

// NewError creates a hardware-signer error with a fixed message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Fixed remediation errors for the known failure causes.
var (
	// ErrTransactionDeclined: the user rejected the signing request on the device.
	ErrTransactionDeclined = NewError("Transaction signing request was rejected by the user")

	// ErrAppClosed: the device is on the dashboard instead of the Cosmos app.
	ErrAppClosed = NewError("Please open the Cosmos Ledger app on your Ledger device.")

	// ErrDeviceLocked: the device needs its PIN entered.
	ErrDeviceLocked = NewError("Please unlock your Ledger device.")

	// ErrConnectedOnAnotherTab: another process holds the device open.
	ErrConnectedOnAnotherTab = NewError("Ledger is connected on a different tab. Please close the other tab and try again.")

	// ErrDeviceDisconnected: the device went away mid-operation.
	ErrDeviceDisconnected = NewError("Ledger device disconnected. Please connect and unlock your device and open the cosmos app on it.")

	// ErrHIDUnsupported: the host has no usable HID stack.
	ErrHIDUnsupported = NewError("Your system doesn't have HID enabled. Please enable it and try again.")

	// ErrConnectFailed: the device could not be opened at all.
	ErrConnectFailed = NewError("Unable to connect to Ledger device. Please check if your ledger is connected and try again.")
)

// Raw-error fragments emitted by device transports, matched case-sensitively
// the way the transports produce them.
const (
	bolosMatch        = "Please close BOLOS and open the Cosmos Ledger app"
	disconnectedMatch = "DisconnectedDeviceDuringOperation"
	lockedMatch       = "Locked device"
	declinedMatch     = "Transaction rejected"
	busyMatch         = "The device is already open"
	hidMatch          = "hidapi"
)

// MapError classifies a raw device error into the fixed taxonomy. Errors
// that are already ledger errors pass through; unrecognized ones are wrapped
// with their raw text so the user still sees something concrete.
func MapError(err error) *Error {
	if err == nil {
		return nil
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, declinedMatch):
		return ErrTransactionDeclined
	case strings.Contains(msg, bolosMatch):
		return ErrAppClosed
	case strings.Contains(msg, lockedMatch):
		return ErrDeviceLocked
	case strings.Contains(msg, disconnectedMatch):
		return ErrDeviceDisconnected
	case strings.Contains(msg, busyMatch):
		return ErrConnectedOnAnotherTab
	case strings.Contains(msg, hidMatch):
		return ErrHIDUnsupported
	default:
		return NewError(msg)
	}
}
