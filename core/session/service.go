package session

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
)

var (
	nowFunc = time.Now // mockable

	codeRegex = regexp.MustCompile(`^\d{7}$`)

	// errors
	ErrNotFound       = errors.New("activation code not found")
	ErrIncompleteCode = errors.New("please enter the full 7-digit activation code")
	ErrInvalidCode    = errors.New("this code is not valid, please check the 7 digits and try again")
	ErrCodeExpired    = errors.New("this code has expired, please request a new one")
)

type (
	// Gateway reads activation codes from the external store.
	Gateway interface {
		// FindActivationCode returns the record exactly matching code,
		// or ErrNotFound when no such record exists.
		FindActivationCode(ctx context.Context, code string) (ActivationCode, error)
	}

	Service struct {
		gw Gateway
	}
)

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Validate checks a 7-digit code against the store and returns the canonical
// identity snapshot, or the rejection reason. Store failures surface as their
// categorized error and are never treated as a verdict on the code itself.
func (svc *Service) Validate(ctx context.Context, code string) (Identity, error) {
	code = core.CleanString(code)
	if !codeRegex.MatchString(code) {
		return Identity{}, ErrIncompleteCode
	}

	ac, err := svc.gw.FindActivationCode(ctx, code)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Identity{}, ErrInvalidCode
		}
		return Identity{}, err
	}

	if ac.ExpiryDate.Before(nowFunc()) {
		return Identity{}, ErrCodeExpired
	}
	return NewIdentity(ac), nil
}
