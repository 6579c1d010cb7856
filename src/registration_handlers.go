package main

import (
	"errors"
	"etix/src/db"
	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func registrationRoutes(g *gin.Engine) *gin.Engine {
	g.
		GET("/register", func(ctx *gin.Context) {
			// Published events for the form dropdown.
			var events []models.Event
			db := db.GetDb()
			if err := db.
				Model(&models.Event{}).
				Select("id", "title").
				Where(&models.Event{Published: true}).
				Order("title asc").
				Find(&events).
				Error; err != nil {
				log.Printf("Error retrieving events for registration form: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			orderId, status, err := utils.RegisterForEvent(&body)
			if err != nil {
				log.Printf("Registration failed for event %d: %s\n", body.EventID, err.Error())
				switch {
				case errors.Is(err, utils.ErrEventNotFound), errors.Is(err, utils.ErrTicketNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, utils.ErrDuplicateRegistration), errors.Is(err, utils.ErrSoldOut):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				default:
					// Rolled back in full; safe to retry.
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Registration could not be completed, please try again"})
				}
				return
			}
			log.Printf("Registered order %d for event %d with payment status %s\n", orderId, body.EventID, status)
			ctx.Redirect(http.StatusFound, "/thank-you")
		})
	return g
}
