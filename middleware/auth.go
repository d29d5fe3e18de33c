package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

type AuthConfig struct {
	SessionNotRequired bool
	ProfileNotRequired bool
}

// GenAuth verifies the firebase bearer token and loads the local user
// profile into the context.
func GenAuth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])

		c.Set(TOKEN_KEY, token)

		if err != nil {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.ProfileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAdmin must run after GenAuth with a required profile.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := MustGetUser(c)
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "admin only",
			})
			c.Abort()
		}
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}

// GetUserIdMaybe returns "" if there is no verified session.
func GetUserIdMaybe(c *gin.Context) string {
	token, hasToken := c.Get(TOKEN_KEY)
	if !hasToken || token == nil {
		return ""
	}
	authToken, isToken := token.(*auth.Token)
	if !isToken || authToken == nil {
		return ""
	}
	return authToken.UID
}
