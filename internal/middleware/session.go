package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/pkg/config"
	"github.com/gin-gonic/gin"
)

// TokenSession is the payload of the signed session cookie written by the
// OAuth collaborator. The core never inspects the token; it only passes
// it on as resolved credentials.
type TokenSession struct {
	Token     string    `json:"token"`
	Login     string    `json:"login"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialsMiddleware resolves the request's GitHub credentials once at
// the boundary: a valid session cookie yields the user's own token with
// Authenticated set, otherwise the process-wide default token is used.
func CredentialsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := models.Credentials{
			Token:         config.AppConfig.GitHub.Token,
			Authenticated: false,
		}

		if session := getSessionFromCookie(c); session != nil && session.Token != "" {
			creds = models.Credentials{
				Token:         session.Token,
				Authenticated: true,
			}
		}

		c.Set("credentials", creds)
		c.Next()
	}
}

// GetCredentials retrieves the resolved credentials from context
func GetCredentials(c *gin.Context) models.Credentials {
	value, exists := c.Get("credentials")
	if !exists {
		return models.Credentials{Token: config.AppConfig.GitHub.Token}
	}
	if creds, ok := value.(models.Credentials); ok {
		return creds
	}
	return models.Credentials{Token: config.AppConfig.GitHub.Token}
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *TokenSession {
	cookie, err := c.Cookie("session")
	if err != nil {
		return nil
	}

	// Split cookie value (signature.data)
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	// Verify signature
	if !verifySignature(data, signature) {
		return nil
	}

	// Decode data
	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var session TokenSession
	if err := json.Unmarshal(decodedData, &session); err != nil {
		return nil
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		return nil
	}

	return &session
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}
