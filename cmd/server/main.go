package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/config"
	"github.com/iliyamo/employee-dashboard/internal/database"
	"github.com/iliyamo/employee-dashboard/internal/handler"
	"github.com/iliyamo/employee-dashboard/internal/queue"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	"github.com/iliyamo/employee-dashboard/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and the message-board cache; nil means
	// both features are disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewResetTokenRepo(db)
	messages := repository.NewMessageRepo(db)
	timesheet := repository.NewTimesheetRepo(db)
	expenses := repository.NewExpenseRepo(db)
	payslips := repository.NewPayslipRepo(db)

	cacheCfg := config.LoadCacheConfig()

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Reset:     handler.NewPasswordResetHandler(cfg, users, tokens),
		Profile:   handler.NewProfileHandler(users),
		Messages:  handler.NewMessageHandler(messages, cacheCfg, rdb),
		Timesheet: handler.NewTimesheetHandler(timesheet),
		Expenses:  handler.NewExpenseHandler(expenses),
		Payslips:  handler.NewPayslipHandler(users, timesheet, payslips),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, h, rdb)

	// The notification consumer drains the email sink in the
	// background and reconnects on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
