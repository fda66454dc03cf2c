package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SessionIDFromContext(r.Context())))
	})
}

func TestIssueAndParse(t *testing.T) {
	svc := NewSessionService("k", "quiz_session", time.Hour, false)
	tok, err := svc.Issue("abc")
	require.NoError(t, err)

	sid, err := svc.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "abc", sid)

	other := NewSessionService("other-key", "quiz_session", time.Hour, false)
	_, err = other.Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewSessionService("k", "quiz_session", -time.Minute, false)
	tok, err := svc.Issue("abc")
	require.NoError(t, err)
	_, err = svc.Parse(tok)
	require.Error(t, err)
}

func TestMiddlewareMintsAndReusesSession(t *testing.T) {
	svc := NewSessionService("k", "quiz_session", time.Hour, true)
	h := svc.Middleware(echoSession())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Body.String()
	require.NotEmpty(t, first)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "quiz_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, first, rec.Body.String())
	require.Empty(t, rec.Result().Cookies())
}

func TestMiddlewareReplacesForgedCookie(t *testing.T) {
	svc := NewSessionService("k", "quiz_session", time.Hour, false)
	h := svc.Middleware(echoSession())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "quiz_session", Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Body.String())
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionIDFromEmptyContext(t *testing.T) {
	require.Empty(t, SessionIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
