package main

import (
	"errors"
	"etix/src/types"
	"etix/src/utils"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func setSessionCookie(ctx *gin.Context, token string) {
	appEnv := os.Getenv("APP_ENV")
	secure := appEnv != "local" && appEnv != ""
	ctx.SetCookie("token", token, 3600*24, "/", os.Getenv("APP_HOST"), secure, true)
}

// nextTarget sanitizes the post-login redirect: relative paths only.
func nextTarget(ctx *gin.Context, fallback string) string {
	next := ctx.Query("next")
	if next == "" {
		return fallback
	}
	decoded, err := url.QueryUnescape(next)
	if err != nil {
		return fallback
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return fallback
	}
	return decoded
}

func authRoutes(g *gin.Engine) *gin.Engine {
	g.
		GET("/login", func(ctx *gin.Context) {
			// Rendering the form never touches session state.
			ctx.JSON(http.StatusOK, gin.H{"next": ctx.Query("next")})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.OrgName != "" {
				userId, orgId, err := utils.SignupOrganization(&body)
				if err != nil {
					log.Printf("Error on organization signup: %s\n", err.Error())
					if errors.Is(err, utils.ErrEmailTaken) {
						ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
						return
					}
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Signup could not be completed"})
					return
				}
				token, err := utils.GenerateJWT(body.Email, userId, types.ROLE_ORG, orgId)
				if err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
					return
				}
				setSessionCookie(ctx, token)
				ctx.Redirect(http.StatusFound, nextTarget(ctx, "/create-event"))
				return
			}

			user, role, orgId, err := utils.AuthenticateUser(body.Email, body.Password)
			if err != nil {
				if errors.Is(err, utils.ErrInvalidCredentials) {
					ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error on login: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			token, err := utils.GenerateJWT(user.Email, user.ID, role, orgId)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			setSessionCookie(ctx, token)
			ctx.Redirect(http.StatusFound, nextTarget(ctx, "/create-event"))
		}).
		GET("/logout", func(ctx *gin.Context) {
			ctx.SetCookie("token", "", -1, "/", os.Getenv("APP_HOST"), false, true)
			ctx.Redirect(http.StatusFound, "/")
		})
	return g
}
