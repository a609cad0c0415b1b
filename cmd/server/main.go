package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/drizz21/car-rent-new/internal/audit"
	"github.com/drizz21/car-rent-new/internal/auth"
	"github.com/drizz21/car-rent-new/internal/booking"
	"github.com/drizz21/car-rent-new/internal/car"
	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/config"
	"github.com/drizz21/car-rent-new/internal/dashboard"
	"github.com/drizz21/car-rent-new/internal/database"
	"github.com/drizz21/car-rent-new/internal/expense"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"
	"github.com/drizz21/car-rent-new/internal/obs"
	"github.com/drizz21/car-rent-new/internal/report"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type deps struct {
	cfg       *config.Config
	log       *slog.Logger
	clk       clock.Clock
	cars      *repository.Cars
	bookings  *repository.Bookings
	expenses  *repository.Expenses
	users     *repository.Users
	auditLogs *repository.AuditLogs
	snapshots *repository.Snapshots
	recorder  *audit.Recorder
}

func newDeps(cfg *config.Config, logger *slog.Logger, db *gorm.DB) *deps {
	auditLogs := repository.NewAuditLogs(db)
	return &deps{
		cfg:       cfg,
		log:       logger,
		clk:       clock.New(cfg.Location),
		cars:      repository.NewCars(db),
		bookings:  repository.NewBookings(db),
		expenses:  repository.NewExpenses(db),
		users:     repository.NewUsers(db),
		auditLogs: auditLogs,
		snapshots: repository.NewSnapshots(db, cfg.Location),
		recorder:  audit.NewRecorder(auditLogs, logger),
	}
}

func routes(app *fiber.App, d *deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	// Public
	api.Post("/auth/register-owner", auth.RegisterOwnerHandler(d.users))
	api.Post("/auth/login", auth.LoginHandler(d.cfg, d.users))
	api.Get("/cars", car.ListCarsHandler(d.cars))
	api.Get("/cars/:id", car.GetCarHandler(d.cars))
	api.Get("/cars/:id/quote", car.QuoteHandler(d.cars, d.clk))

	// Owner and staff
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(d.cfg))

	protected.Get("/auth/me", auth.MeHandler(d.users))

	protected.Get("/bookings/stats", booking.StatsHandler(d.snapshots, d.clk, d.log))
	protected.Get("/bookings", booking.ListBookingsHandler(d.bookings, d.cars))
	protected.Post("/bookings", booking.CreateBookingHandler(d.bookings, d.clk, d.recorder))
	protected.Get("/bookings/:id", booking.GetBookingHandler(d.bookings, d.cars))
	protected.Put("/bookings/:id", booking.UpdateBookingHandler(d.bookings, d.clk, d.recorder))
	protected.Delete("/bookings/:id", booking.DeleteBookingHandler(d.bookings, d.recorder))

	protected.Get("/expense-categories", expense.ListCategoriesHandler())
	protected.Get("/expenses/stats", expense.StatsHandler(d.expenses, d.clk, d.log))
	protected.Get("/expenses/summary/monthly", expense.MonthlySummaryHandler(d.expenses, d.clk, d.log))
	protected.Get("/expenses", expense.ListExpensesHandler(d.expenses, d.clk))
	protected.Post("/expenses", expense.CreateExpenseHandler(d.expenses, d.clk, d.recorder))
	protected.Get("/expenses/:id", expense.GetExpenseHandler(d.expenses))
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler(d.expenses, d.clk, d.recorder))
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler(d.expenses, d.recorder))

	protected.Get("/reports/summary", report.SummaryHandler(d.snapshots, d.clk, d.log))
	protected.Get("/reports/monthly", report.MonthlyHandler(d.snapshots, d.clk, d.cfg.ReportMonths, d.log))
	protected.Get("/dashboard", dashboard.DashboardHandler(d.snapshots, d.clk, d.cfg.ReportMonths, d.log))

	// Owner only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleOwner))

	adminRoutes.Post("/cars", car.CreateCarHandler(d.cars, d.recorder))
	adminRoutes.Put("/cars/:id", car.UpdateCarHandler(d.cars, d.recorder))
	adminRoutes.Delete("/cars/:id", car.DeleteCarHandler(d.cars, d.recorder))

	adminRoutes.Post("/users", auth.CreateStaffHandler(d.users))
	adminRoutes.Get("/reports/export", report.ExportHandler(d.snapshots, d.clk, d.log))

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(d.auditLogs, d.cfg.Location))
	adminRoutes.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(d.auditLogs))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httpx.ErrorHandler(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(obs.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOriginList(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	routes(app, newDeps(cfg, logger, db))

	go func() {
		logger.Info("listening", slog.String("port", cfg.HTTPPort), slog.String("timezone", cfg.Location.String()))
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			logger.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("shutdown", slog.Any("err", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
