package middlewares

import (
	"etix/src/config"
	"etix/src/db"
	"etix/src/models"
	"etix/src/types"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func sessionToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	bearerToken := ctx.Request.Header.Get("Authorization")
	if strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

func redirectToLogin(ctx *gin.Context) {
	next := url.QueryEscape(ctx.Request.URL.RequestURI())
	ctx.Redirect(http.StatusFound, "/login?next="+next)
	ctx.Abort()
}

// AuthMiddleware gates organization/admin routes. A missing or invalid
// session redirects to the login page, preserving the requested URL so a
// successful login can return the user to it.
func AuthMiddleware(ctx *gin.Context) {
	reqToken := sessionToken(ctx)
	if reqToken == "" {
		redirectToLogin(ctx)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return config.SecretKey(), nil
	})
	if err != nil || !tkn.Valid {
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
		}
		redirectToLogin(ctx)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		redirectToLogin(ctx)
		return
	}
	db := db.GetDb()
	var user models.User
	db.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)
	if uint(uid) != user.ID || user.ID < 1 {
		redirectToLogin(ctx)
		return
	}

	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("org", claims.Organization)
	ctx.Set("role", string(claims.Role))
}
