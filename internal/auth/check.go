// Package auth decides whether an employee may log in with a PIN.
package auth

import (
	"strings"
	"time"

	"kpi-api/internal/models"
)

type Outcome string

const (
	OK         Outcome = "OK"
	NotFound   Outcome = "NOT_FOUND"
	Inactive   Outcome = "INACTIVE"
	InvalidPIN Outcome = "INVALID_PIN"
	PINExpired Outcome = "PIN_EXPIRED"
)

// Result of a check. View is set only for OK.
type Result struct {
	Outcome Outcome
	View    *models.UserView
}

type Checker struct {
	Verifier PINVerifier
	Now      func() time.Time
}

func NewChecker(v PINVerifier) *Checker {
	if v == nil {
		v = PlainVerifier{}
	}
	return &Checker{Verifier: v, Now: time.Now}
}

// Check runs the strict sequence: not found, inactive, invalid pin, expired.
// A blank pin is always INVALID_PIN.
func (ch *Checker) Check(u *models.User, pin string) Result {
	return ch.run(u, pin, true)
}

// Lookup runs the same sequence, but an absent pin skips the pin comparison
// so the login screen can resolve a name before the pin is typed.
func (ch *Checker) Lookup(u *models.User, pin string) Result {
	return ch.run(u, pin, pin != "")
}

func (ch *Checker) run(u *models.User, pin string, comparePIN bool) Result {
	if u == nil {
		return Result{Outcome: NotFound}
	}
	if !models.IsYes(u.Active.String()) {
		return Result{Outcome: Inactive}
	}
	if comparePIN {
		if strings.TrimSpace(pin) == "" || !ch.Verifier.Stored(u) || !ch.Verifier.Verify(u, pin) {
			return Result{Outcome: InvalidPIN}
		}
	}
	if u.PINExpiresAt.Before(ch.now()) {
		return Result{Outcome: PINExpired}
	}

	view := models.MapUser(*u)
	return Result{Outcome: OK, View: &view}
}

func (ch *Checker) now() time.Time {
	if ch.Now == nil {
		return time.Now()
	}
	return ch.Now()
}
