package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "festival_session"
	sessionContextKey = "session_id"
)

// SessionMiddleware 署名付きCookieでセッションIDを管理する
// 有効なトークンが無い場合は新しいセッションIDを発行し、リクエストごとに有効期限を延長する
type SessionMiddleware struct {
	secret   []byte
	lifetime time.Duration
	secure   bool
	now      func() time.Time
}

// NewSessionMiddleware secureがtrueの場合、CookieにSecure属性を付ける（本番用）
func NewSessionMiddleware(secret string, lifetime time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		secret:   []byte(secret),
		lifetime: lifetime,
		secure:   secure,
		now:      time.Now,
	}
}

func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(sessionCookieName); err == nil {
			sessionID = m.parse(raw)
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		token, err := m.issue(sessionID)
		if err != nil {
			log.Printf("❌ セッショントークンの発行に失敗: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Sitzung konnte nicht erstellt werden",
				"details": err.Error(),
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, token, int(m.lifetime.Seconds()), "/", "", m.secure, true)
		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

func (m *SessionMiddleware) issue(sessionID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// parse 検証に失敗した場合は空文字を返す
func (m *SessionMiddleware) parse(raw string) string {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// SessionID ミドルウェアが設定したセッションID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
