package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "sheetquiz"

// SessionService signs the cookie that binds a browser to its quiz session.
// The cookie carries no identity; anyone holding it continues the same attempt.
type SessionService struct {
	hmac   []byte
	cookie string
	ttl    time.Duration
	secure bool
}

func NewSessionService(secret, cookieName string, ttl time.Duration, secure bool) *SessionService {
	return &SessionService{hmac: []byte(secret), cookie: cookieName, ttl: ttl, secure: secure}
}

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (a *SessionService) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *SessionService) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return c.SessionID, nil
}

// Middleware resolves the session id from the cookie, minting a new session
// (and cookie) when it is missing, expired or forged.
func (a *SessionService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(a.cookie); err == nil && c.Value != "" {
			if sid, err := a.Parse(c.Value); err == nil {
				next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
				return
			}
		}

		sid := uuid.NewString()
		tok, err := a.Issue(sid)
		if err != nil {
			log.Printf("issue session token: %v", err)
			http.Error(w, "issue session", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     a.cookie,
			Value:    tok,
			Path:     "/",
			HttpOnly: true,
			Secure:   a.secure,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(a.ttl),
		})
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
	})
}
