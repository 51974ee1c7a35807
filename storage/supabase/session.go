package supabase

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core/session"
)

type sessionGateway struct {
	client *Client
}

var _ session.Gateway = (*sessionGateway)(nil) // interface compliance check

func NewSessionGateway(client *Client) session.Gateway {
	return &sessionGateway{client: client}
}

// activationCodeRow is the raw store shape; timestamps come back in a few
// formats depending on the column type, so they are kept as strings and
// normalized here, once.
type activationCodeRow struct {
	Code        string `json:"code"`
	StudentName string `json:"student_name"`
	Section     string `json:"section"`
	ExpiryDate  string `json:"expiry_date"`
}

func (row activationCodeRow) normalize() (session.ActivationCode, error) {
	expiry, err := parseTimestamp(row.ExpiryDate)
	if err != nil {
		return session.ActivationCode{}, errors.Wrapf(err, "parsing expiry_date for code %s", row.Code)
	}
	return session.ActivationCode{
		Code:        row.Code,
		StudentName: row.StudentName,
		Section:     row.Section,
		ExpiryDate:  expiry,
	}, nil
}

func (gw *sessionGateway) FindActivationCode(ctx context.Context, code string) (session.ActivationCode, error) {
	var rows []activationCodeRow
	q := NewQuery("activation_codes").Eq("code", code)
	if err := gw.client.Do(ctx, q, &rows); err != nil {
		return session.ActivationCode{}, err
	}
	if len(rows) == 0 {
		return session.ActivationCode{}, session.ErrNotFound
	}
	return rows[0].normalize()
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
