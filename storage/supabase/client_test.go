package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coursatplus/coursat/core"
	"github.com/coursatplus/coursat/core/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &core.Config{}
	conf.Store.URL = srv.URL
	conf.Store.APIKey = "anon-key"
	conf.Store.Timeout = 2 * time.Second
	return NewClient(conf), srv
}

func TestClientDo_requestShape(t *testing.T) {
	var gotPath, gotQuery, gotAPIKey, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})

	var dst []struct{}
	q := NewQuery("activation_codes").Eq("code", "1111111").OrderAsc("id").Limit(5)
	err := client.Do(context.Background(), q, &dst)
	assert.NoError(t, err)

	assert.Equal(t, "/rest/v1/activation_codes", gotPath)
	assert.Equal(t, "code=eq.1111111&limit=5&order=id.asc&select=%2A", gotQuery)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
}

func TestClientDo_statusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind core.RemoteErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, core.RemotePermission},
		{"forbidden", http.StatusForbidden, core.RemotePermission},
		{"not found", http.StatusNotFound, core.RemoteNotFound},
		{"server error", http.StatusInternalServerError, core.RemoteServer},
		{"bad gateway", http.StatusBadGateway, core.RemoteServer},
		{"teapot", http.StatusTeapot, core.RemoteUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			var dst []struct{}
			err := client.Do(context.Background(), NewQuery("subjects"), &dst)
			assert.Error(t, err)
			kind, ok := core.RemoteKind(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestClientDo_networkFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // connection refused from here on

	var dst []struct{}
	err := client.Do(context.Background(), NewQuery("subjects"), &dst)
	assert.Error(t, err)
	kind, ok := core.RemoteKind(err)
	assert.True(t, ok)
	assert.Equal(t, core.RemoteNetwork, kind)
}

func TestClientDo_noContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	var dst []struct{}
	err := client.Do(context.Background(), NewQuery("subjects"), &dst)
	assert.NoError(t, err)
	assert.Empty(t, dst)
}

func TestSessionGateway_FindActivationCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.1234567", r.URL.Query().Get("code"))
		_, _ = w.Write([]byte(`[{
			"code": "1234567",
			"student_name": "Omar",
			"section": "scientific",
			"expiry_date": "2026-09-30T00:00:00"
		}]`))
	})

	gw := NewSessionGateway(client)
	ac, err := gw.FindActivationCode(context.Background(), "1234567")
	assert.NoError(t, err)
	assert.Equal(t, "Omar", ac.StudentName)
	assert.Equal(t, "scientific", ac.Section)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), ac.ExpiryDate)
}

func TestSessionGateway_notFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	gw := NewSessionGateway(client)
	_, err := gw.FindActivationCode(context.Background(), "0000000")
	assert.Equal(t, session.ErrNotFound, err)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-09-30T10:30:00Z", time.Date(2026, 9, 30, 10, 30, 0, 0, time.UTC)},
		{"2026-09-30T10:30:00", time.Date(2026, 9, 30, 10, 30, 0, 0, time.UTC)},
		{"2026-09-30 10:30:00", time.Date(2026, 9, 30, 10, 30, 0, 0, time.UTC)},
		{"2026-09-30", time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseTimestamp("not a date")
	assert.Error(t, err)
}

func TestCatalogRepository_normalization(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/rest/v1/subjects":
			_, _ = w.Write([]byte(`[{"id": 1, "name": "Math", "image_url": "math.png"}]`))
		case r.URL.Path == "/rest/v1/questions":
			_, _ = w.Write([]byte(`[{
				"id": 7, "exam_id": 3, "text": "2+2?",
				"option_a": "3", "option_b": "4", "option_c": "5", "option_d": "6",
				"correct_answer": 1
			}]`))
		default:
			_, _ = w.Write([]byte("[]"))
		}
	})
	repo := NewCatalogRepository(client)
	ctx := context.Background()

	subjects, err := repo.AllSubjects(ctx)
	assert.NoError(t, err)
	if assert.Len(t, subjects, 1) {
		assert.Equal(t, "1", subjects[0].ID)
		assert.Equal(t, "math.png", subjects[0].Image) // image_url fallback
	}

	questions, err := repo.QuestionsByExam(ctx, "3")
	assert.NoError(t, err)
	if assert.Len(t, questions, 1) {
		assert.Equal(t, []string{"3", "4", "5", "6"}, questions[0].Options)
		assert.Equal(t, 1, questions[0].CorrectAnswer)
	}
}
