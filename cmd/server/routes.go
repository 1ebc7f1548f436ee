package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"
	"gorm.io/gorm"

	_ "github.com/aldoetobex/legal-practice-backend/docs"
	"github.com/aldoetobex/legal-practice-backend/internal/appointments"
	"github.com/aldoetobex/legal-practice-backend/internal/blogs"
	"github.com/aldoetobex/legal-practice-backend/internal/casemanager"
	"github.com/aldoetobex/legal-practice-backend/internal/cases"
	"github.com/aldoetobex/legal-practice-backend/internal/clients"
	"github.com/aldoetobex/legal-practice-backend/internal/lawyers"
	"github.com/aldoetobex/legal-practice-backend/internal/middleware"
	"github.com/aldoetobex/legal-practice-backend/internal/storage"
	"github.com/aldoetobex/legal-practice-backend/pkg/config"
)

func newApp(db *gorm.DB, store storage.Store, logger *slog.Logger, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		BodyLimit:    casemanager.MaxFileSize + 1<<20,
	})

	// Metrics wraps the logger so it observes the final status.
	app.Use(middleware.Metrics())
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", health(db))
	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)
	if cfg.StorageDriver == "local" {
		app.Static("/"+cfg.UploadDir, cfg.UploadDir)
	}

	api := app.Group("/api")

	// Lawyers
	lawyerRepo := lawyers.NewRepository(db)
	lawyerH := lawyers.NewHandler(db)
	api.Post("/lawyer", lawyerH.Create)
	api.Get("/lawyer", lawyerH.List)
	api.Put("/lawyer/:id", lawyerH.Update)
	api.Delete("/lawyer/:id", lawyerH.Delete)

	// Clients
	clientH := clients.NewHandler(db, lawyerRepo)
	api.Post("/clients", clientH.Create)
	api.Get("/clients", clientH.List)
	api.Patch("/clients/:id", clientH.Update)
	api.Delete("/clients/:id", clientH.Delete)

	// Case manager (before /cases/:id)
	mgrH := casemanager.NewHandler(db, store, logger)
	mgr := api.Group("/cases/manager/:id")
	mgr.Post("/comments", mgrH.AddComment)
	mgr.Get("/comments", mgrH.GetComments)
	mgr.Post("/notes", mgrH.AddNote)
	mgr.Get("/notes", mgrH.GetNotes)
	mgr.Post("/lawyers", mgrH.AddLawyer)
	mgr.Get("/lawyers", mgrH.GetTeamLawyers)
	mgr.Delete("/lawyers/:lawyerId", mgrH.RemoveLawyer)
	mgr.Post("/files", mgrH.UploadFile)
	mgr.Get("/files", mgrH.GetFiles)

	// Cases
	caseH := cases.NewHandler(db, clients.NewRepository(db))
	api.Post("/cases", caseH.Create)
	api.Post("/cases/client_id", caseH.CreateByClientID)
	api.Get("/cases", caseH.List)
	api.Get("/cases/export", caseH.Export)
	api.Get("/cases/:id", caseH.Get)
	api.Patch("/cases/:id", caseH.Update)
	api.Delete("/cases/:id", caseH.Delete)

	// Appointments
	apptH := appointments.NewHandler(db)
	api.Post("/appointments", apptH.Create)
	api.Get("/appointments", apptH.List)
	api.Get("/appointments/lawyer/:lawyer_id", apptH.ListByLawyer)

	// Blogs
	blogH := blogs.NewHandler(db)
	api.Post("/blogs", blogH.Create)
	api.Get("/blogs", blogH.List)
	api.Patch("/blogs/:id", blogH.Update)
	api.Delete("/blogs/:id", blogH.Delete)

	return app
}

// health reports whether the database answers a ping.
func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
