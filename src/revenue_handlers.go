package main

import (
	"errors"
	"etix/src/types"
	"etix/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func revenueHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/revenue", func(ctx *gin.Context) {
			role := types.Role(ctx.GetString("role"))
			orgId := ctx.GetUint("org")

			var rows []types.RevenueReportRow
			var err error
			if role == types.ROLE_ADMIN {
				rows, err = utils.GetAdminRevenueReport()
			} else {
				if orgId < 1 {
					ctx.JSON(http.StatusForbidden, gin.H{"error": utils.ErrNotAuthorized.Error()})
					return
				}
				rows, err = utils.GetOrgRevenueReport(orgId)
			}
			if err != nil {
				log.Printf("Error building revenue report: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}

			pending, err := utils.GetPendingOrders(role, orgId)
			if err != nil {
				log.Printf("Error retrieving pending orders: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}

			var ticketsSold, totalCents, feeCents int64
			for _, r := range rows {
				ticketsSold += r.TicketsSold
				totalCents += r.RevenueCents
				feeCents += r.FeeCents
			}
			stats := gin.H{
				"tickets_sold":  ticketsSold,
				"revenue_cents": totalCents,
				"fee_cents":     feeCents,
				"events_hosted": len(rows),
			}
			if role != types.ROLE_ADMIN {
				// Organizations see their net take; the fee is the platform's.
				stats["net_revenue_cents"] = totalCents - feeCents
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":    rows,
				"stats":   stats,
				"pending": pending,
			})
		}).
		POST("/update-order/:id/:action", func(ctx *gin.Context) {
			var params types.UpdateOrderRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := types.Role(ctx.GetString("role"))
			orgId := ctx.GetUint("org")
			if err := utils.UpdateOrderStatus(params.OrderID, params.Action, role, orgId); err != nil {
				log.Printf("Error updating order %d (%s): %s\n", params.OrderID, params.Action, err.Error())
				switch {
				case errors.Is(err, utils.ErrOrderNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, utils.ErrNotAuthorized):
					ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
				default:
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				}
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
