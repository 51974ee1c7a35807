package session

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/coursatplus/coursat/core"
)

// ActivationCode is the store-owned record gating platform access.
// It is created and revoked by the administration only; the client never
// writes it.
type ActivationCode struct {
	Code        string    `json:"code"`
	StudentName string    `json:"student_name"`
	Section     string    `json:"section"`
	ExpiryDate  time.Time `json:"expiry_date"` // UTC
}

// Identity is the local snapshot of the matching ActivationCode at login time.
// ExpiryDate may be refreshed in place when the store reports a change.
type Identity struct {
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Section    string    `json:"section"`
	ExpiryDate time.Time `json:"expiry_date"`
}

func NewIdentity(ac ActivationCode) Identity {
	return Identity{
		Name:       ac.StudentName,
		Code:       ac.Code,
		Section:    ac.Section,
		ExpiryDate: ac.ExpiryDate,
	}
}

// ExpiringSoon reports whether the identity expires within the next 24 hours.
func (id Identity) ExpiringSoon(now time.Time) bool {
	left := id.ExpiryDate.Sub(now)
	return left > 0 && left < 24*time.Hour
}

// TerminationReason is the categorized cause for forcibly ending a session.
type TerminationReason int

const (
	TerminationNone TerminationReason = iota
	TerminationExpired
	TerminationRevoked
)

func (r TerminationReason) String() string {
	switch r {
	case TerminationExpired:
		return "expired"
	case TerminationRevoked:
		return "revoked"
	}
	return "none"
}

// Message returns the user-facing text shown on the blocking termination screen.
func (r TerminationReason) Message() string {
	switch r {
	case TerminationExpired:
		return "your subscription has expired, please renew your code to continue"
	case TerminationRevoked:
		return "this code has been deactivated by the administration, please contact support"
	}
	return ""
}

// Session is the client-owned state derived from an ActivationCode.
// Authenticated implies Identity.Code matched a code that was still valid at
// the last check. Once Reason != TerminationNone all interaction is blocked
// until logout.
type Session struct {
	Authenticated bool              `json:"authenticated"`
	Identity      Identity          `json:"identity"`
	Reason        TerminationReason `json:"-"`
}

// Credentials is the activation input; codes shorter than 7 digits are
// rejected here, before any network call.
type Credentials struct {
	Code string `json:"code" validate:"required,activation_code"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Code = core.CleanString(c.Code)
	return validate.Struct(c)
}
