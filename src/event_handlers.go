package main

import (
	"context"
	"encoding/json"
	"errors"
	"etix/src/db"
	"etix/src/lib"
	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const homeEventsCacheKey = "home:events"
const homeEventsLimit = 6

func publicEventRoutes(g *gin.Engine) *gin.Engine {
	g.
		GET("/", func(ctx *gin.Context) {
			if rd := lib.GetRedisClient(); rd != nil {
				val := rd.JSONGet(context.Background(), homeEventsCacheKey).Val()
				if val != "" {
					var cached []types.EventListRow
					if err := json.Unmarshal([]byte(val), &cached); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": cached})
						return
					}
				}
			}
			events, err := utils.ListPublishedEvents(homeEventsLimit)
			if err != nil {
				log.Printf("Error retrieving published events: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				go rd.JSONSet(context.Background(), homeEventsCacheKey, "$", events)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/events", func(ctx *gin.Context) {
			events, err := utils.ListPublishedEvents(0)
			if err != nil {
				log.Printf("Error retrieving event listing: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/thank-you", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"message": "Thank you for registering! Check your email for details."})
		})
	return g
}

func createEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/create-event", func(ctx *gin.Context) {
			orgId := ctx.GetUint("org")
			if orgId < 1 {
				ctx.JSON(http.StatusForbidden, gin.H{"error": utils.ErrNotAuthorized.Error()})
				return
			}
			var org models.Organization
			db := db.GetDb()
			if err := db.Where(&models.Organization{ID: orgId}).First(&org).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Organization does not exist"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": org})
		}).
		POST("/create-event", func(ctx *gin.Context) {
			orgId := ctx.GetUint("org")
			if orgId < 1 {
				ctx.JSON(http.StatusForbidden, gin.H{"error": utils.ErrNotAuthorized.Error()})
				return
			}
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := utils.CreateEventWithTicket(orgId, &body)
			if err != nil {
				log.Printf("Error creating event for org %d: %s\n", orgId, err.Error())
				if errors.Is(err, utils.ErrCheckInputs) {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				go rd.Del(context.Background(), homeEventsCacheKey)
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		})
	return g
}
