package main

import (
	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/interfaces/http/handlers"
	"loyaltyjo.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	cardHandler      *handlers.CardHandler
	ledgerHandler    *handlers.LedgerHandler
	analyticsHandler *handlers.AnalyticsHandler
	adminHandler     *handlers.AdminHandler
	authMiddleware   gin.HandlerFunc
	publicLimiter    gin.HandlerFunc
	idempotency      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Account routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/staff/login", d.authHandler.StaffLogin)
		}
		v1.POST("/admin/login", d.authHandler.AdminLogin)

		// Customer app (public, throttled per client)
		v1.POST("/customers/register", d.publicLimiter, d.ledgerHandler.RegisterCustomer)
		v1.GET("/public/cards/:cardId", d.publicLimiter, d.cardHandler.GetPublicCard)

		// Business routes (owner or staff)
		business := v1.Group("")
		business.Use(d.authMiddleware, middleware.RequireBusiness())
		{
			business.GET("/business", d.authHandler.GetBusiness)

			business.GET("/cards", d.cardHandler.ListCards)
			business.POST("/cards", middleware.RequireOwner(), d.cardHandler.UpsertCard)

			business.GET("/customers", d.ledgerHandler.ListCustomers)
			business.POST("/customers/scan", d.ledgerHandler.ScanCustomer)
			business.POST("/stamps/add", d.idempotency, d.ledgerHandler.AddStamp)
			business.POST("/stamps/redeem", d.idempotency, d.ledgerHandler.RedeemReward)
			business.GET("/memberships/:id/transactions", d.ledgerHandler.ListTransactions)

			business.GET("/analytics/dashboard", d.analyticsHandler.Dashboard)
			business.GET("/analytics/today", d.analyticsHandler.Today)

			business.GET("/staff", middleware.RequireOwner(), d.authHandler.ListStaff)
			business.POST("/staff", middleware.RequireOwner(), d.authHandler.CreateStaff)
		}

		// Admin routes (platform operators)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", d.adminHandler.GetStats)
			admin.GET("/analytics", d.adminHandler.GetAnalytics)
			admin.GET("/businesses", d.adminHandler.ListBusinesses)
			admin.POST("/businesses", d.adminHandler.CreateBusiness)
			admin.PUT("/businesses/:id/status", d.adminHandler.UpdateBusinessStatus)
			admin.GET("/plans", d.adminHandler.ListPlans)
			admin.GET("/subscriptions", d.adminHandler.ListSubscriptions)
		}
	}
}
