package dummystore

import (
	"context"

	"github.com/coursatplus/coursat/core/session"
)

type sessionGateway struct {
	db *DB
}

var _ session.Gateway = (*sessionGateway)(nil) // interface compliance check

func NewSessionGateway(db *DB) session.Gateway {
	return &sessionGateway{db: db}
}

func (gw *sessionGateway) FindActivationCode(_ context.Context, code string) (session.ActivationCode, error) {
	gw.db.RLock()
	defer gw.db.RUnlock()

	if ac, ok := gw.db.codes[code]; ok {
		return ac, nil
	}
	return session.ActivationCode{}, session.ErrNotFound
}
