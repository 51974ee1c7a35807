package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coursatplus/coursat/core"
	"github.com/coursatplus/coursat/core/catalog"
	"github.com/coursatplus/coursat/core/session"
	dummystore "github.com/coursatplus/coursat/storage/dummy"
)

type testLogger struct{ std *log.Logger }

func newTestLogger() *testLogger {
	return &testLogger{std: log.New(ioutil.Discard, "", 0)}
}

func (l testLogger) Enable(bool)                       {}
func (l testLogger) Debug(string, ...interface{})      {}
func (l testLogger) Info(string, ...interface{})       {}
func (l testLogger) Warn(string, ...interface{})       {}
func (l testLogger) Error(string, ...interface{})      {}
func (l testLogger) Fatal(msg string, _ ...interface{}) { l.std.Println(msg) }

var _ core.Logger = (*testLogger)(nil)

func newTestConfig() *core.Config {
	conf := &core.Config{
		Env:       "TEST",
		AppName:   "Coursat Plus",
		SecretKey: "test-secret",
	}
	conf.Session.CheckInterval = 5 * time.Millisecond
	conf.Session.CountdownInterval = 5 * time.Millisecond
	return conf
}

func newTestServer(t *testing.T) (Server, *dummystore.DB, *core.Config) {
	t.Helper()

	db, err := dummystore.Open()
	if err != nil {
		t.Fatalf("dummystore.Open() failed: %v", err)
	}

	conf := newTestConfig()
	logger := newTestLogger()
	reg := session.NewRegistry(dummystore.NewSessionGateway(db), logger, conf.Session.CheckInterval)
	t.Cleanup(reg.Shutdown)

	validate, translator := core.NewValidator()
	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Sessions:   reg,
		CatalogSvc: catalog.NewService(dummystore.NewCatalogRepository(db)),
		Validate:   validate,
		Translator: translator,
	})
	return srv, db, conf
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echoHeaderContentType, "application/json")
	return req
}

const echoHeaderContentType = "Content-Type"

func doRequest(srv Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// activateCode runs the activation flow and returns the bearer token.
func activateCode(t *testing.T, srv Server, code string) string {
	t.Helper()

	rec := doRequest(srv, jsonRequest(http.MethodPost, "/v1/session/activate", map[string]string{"code": code}))
	if rec.Code != http.StatusOK {
		t.Fatalf("activate(%s) = %d, want %d; body: %s", code, rec.Code, http.StatusOK, rec.Body)
	}
	var resp ActivateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding activate response: %v", err)
	}
	return resp.Token
}

func authedRequest(method, target, token string, body interface{}) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
