// Package sms abstracts an outbound text-message provider.
package sms

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned by the factory for an unrecognized driver name.
var ErrUnknownDriver = errors.New("sms: unknown driver")

// SMS sends a text message to a single recipient.
type SMS interface {
	// Send delivers body to the phone number in E.164 format.
	Send(ctx context.Context, to, body string) error
}

const (
	// DriverTwilio selects the Twilio REST implementation.
	DriverTwilio = "twilio"
	// DriverNoop selects the logging stand-in for development.
	DriverNoop = "noop"
)

// Config carries provider credentials for the factory.
type Config struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API token.
	AuthToken string
	// From is the sending phone number.
	From string
}

// NewFromDriver builds an SMS implementation for the configured driver.
func NewFromDriver(driver string, cfg Config) (SMS, error) {
	switch driver {
	case DriverTwilio:
		return NewTwilio(cfg), nil
	case DriverNoop, "":
		return NewNoop(), nil
	default:
		return nil, ErrUnknownDriver
	}
}
