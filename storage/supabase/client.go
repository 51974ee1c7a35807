package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
)

// user-facing failure messages, shown as-is
const (
	msgPermission = "you do not have permission to access this content, make sure your code is activated"
	msgNotFound   = "the content you are looking for is not available right now"
	msgServer     = "the platform server is having a problem right now, please try again shortly"
	msgNetwork    = "could not reach the server, please check your internet connection"
	msgUnknown    = "an unexpected error occurred"
)

// Client issues read requests against the project's PostgREST surface.
// Authentication is two fixed headers carrying the anon key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(conf *core.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Store.URL, "/") + "/rest/v1",
		apiKey:  conf.Store.APIKey,
		http:    &http.Client{Timeout: conf.Store.Timeout},
	}
}

// Query describes one parameterized read: equality filters, ordering by id,
// a row limit and a field projection, all carried as URL query parameters.
type Query struct {
	table  string
	eq     [][2]string
	order  string
	limit  int
	fields []string
}

func NewQuery(table string) *Query {
	return &Query{table: table}
}

func (q *Query) Eq(field, value string) *Query {
	q.eq = append(q.eq, [2]string{field, value})
	return q
}

func (q *Query) OrderAsc(field string) *Query {
	q.order = field + ".asc"
	return q
}

func (q *Query) OrderDesc(field string) *Query {
	q.order = field + ".desc"
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) Select(fields ...string) *Query {
	q.fields = fields
	return q
}

func (q *Query) encode() string {
	vals := make(url.Values)
	for _, f := range q.eq {
		vals.Set(f[0], "eq."+f[1])
	}
	if len(q.fields) > 0 {
		vals.Set("select", strings.Join(q.fields, ","))
	} else {
		vals.Set("select", "*")
	}
	if q.order != "" {
		vals.Set("order", q.order)
	}
	if q.limit > 0 {
		vals.Set("limit", strconv.Itoa(q.limit))
	}
	return vals.Encode()
}

// Do runs the query and decodes the JSON response into dst. Failures come
// back as a categorized core.RemoteError; an empty result set is data, not an
// error.
func (c *Client) Do(ctx context.Context, q *Query, dst interface{}) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, q.table, q.encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrapf(err, "building request for %s", q.table)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return core.NewRemoteError(core.RemoteNetwork, msgNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return core.NewRemoteError(core.RemotePermission, msgPermission, nil)
	case resp.StatusCode == http.StatusNotFound:
		return core.NewRemoteError(core.RemoteNotFound, msgNotFound, nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return core.NewRemoteError(core.RemoteServer, msgServer, nil)
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var body struct {
			Message string `json:"message"`
		}
		msg := msgUnknown
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			msg = body.Message
		}
		return core.NewRemoteError(core.RemoteUnknown, msg, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return core.NewRemoteError(core.RemoteUnknown, msgUnknown, errors.Wrapf(err, "decoding %s response", q.table))
	}
	return nil
}
