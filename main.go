package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/ketan-2905/classbunk/config"
	"github.com/ketan-2905/classbunk/internal/handlers"
	"github.com/ketan-2905/classbunk/internal/middleware"
	"github.com/ketan-2905/classbunk/internal/routes"
	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/models"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	err = db.AutoMigrate(
		&models.Branch{},
		&models.Division{},
		&models.Elective{},
		&models.Student{},
		&models.LectureTemplate{},
		&models.LectureInstance{},
		&models.Attendance{},
		&models.AcademicCalendar{},
	)
	if err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	rdb := config.ConnectRedis(cfg)

	svc := schedule.NewService(db, cfg)
	h := handlers.New(db, rdb, cfg, svc)

	// Nightly catch-up so instances exist even for students who never open
	// the dashboard that day.
	c := cron.New()
	if _, err := c.AddFunc("30 0 * * *", svc.SyncAll); err != nil {
		slog.Error("Failed to register sync job", "error", err)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	r := gin.Default()
	routes.RegisterAPIRoutes(r, h, middleware.AuthMiddleware(cfg, db, rdb))

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
