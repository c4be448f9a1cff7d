package main

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ademilsodream/tcponto-app-sub002/config"
	"github.com/ademilsodream/tcponto-app-sub002/geocode"
	"github.com/ademilsodream/tcponto-app-sub002/handlers"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
	"github.com/ademilsodream/tcponto-app-sub002/models"
)

func newRouter(cfg *config.Config, logger zerolog.Logger, loc *time.Location, geocoder geocode.Geocoder) *chi.Mux {
	authHandler := handlers.NewAuthHandler(cfg)
	clockHandler := handlers.NewClockHandler(cfg, loc, geocoder)
	editHandler := handlers.NewEditRequestHandler()
	reportHandler := handlers.NewReportHandler()
	adminHandler := handlers.NewAdminHandler()

	router := chi.NewRouter()
	router.Use(middleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/change-password", authHandler.ChangePassword)

			// Everything below requires a completed password change.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePasswordChange)

				r.Get("/auth/me", authHandler.Me)

				r.Post("/clock/{event}", clockHandler.Punch)
				r.Get("/clock/today", clockHandler.Today)

				r.Get("/records", reportHandler.OwnRecords)

				r.Post("/edit-requests", editHandler.Create)
				r.Get("/edit-requests", editHandler.ListOwn)

				// Admin only routes
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))

					r.Get("/admin/edit-requests", editHandler.ListAll)
					r.Post("/admin/edit-requests/{id}/approve", editHandler.Approve)
					r.Post("/admin/edit-requests/{id}/reject", editHandler.Reject)

					r.Get("/admin/reports/payroll", reportHandler.Payroll)
					r.Get("/admin/reports/payroll/export", reportHandler.PayrollExport)
					r.Get("/admin/reports/hours", reportHandler.Hours)

					r.Get("/admin/employees", adminHandler.ListEmployees)
					r.Post("/admin/employees", adminHandler.CreateEmployee)
					r.Put("/admin/employees/{id}", adminHandler.UpdateEmployee)
					r.Delete("/admin/employees/{id}", adminHandler.DeleteEmployee)

					r.Get("/admin/shifts", adminHandler.ListShifts)
					r.Post("/admin/shifts", adminHandler.CreateShift)
					r.Put("/admin/shifts/{id}", adminHandler.UpdateShift)

					r.Get("/admin/locations", adminHandler.ListLocations)
					r.Post("/admin/locations", adminHandler.CreateLocation)
					r.Put("/admin/locations/{id}", adminHandler.UpdateLocation)
					r.Delete("/admin/locations/{id}", adminHandler.DeleteLocation)
				})
			})
		})
	})

	return router
}
