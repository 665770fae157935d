package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/worklog-hq/timesheet-backend-go/internal/config"
	appHTTP "github.com/worklog-hq/timesheet-backend-go/internal/handler/http"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/ws"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/hub"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/jwt"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/telegram"
	"github.com/worklog-hq/timesheet-backend-go/internal/repository/postgresql"
	messageService "github.com/worklog-hq/timesheet-backend-go/internal/service/message"
	notificationService "github.com/worklog-hq/timesheet-backend-go/internal/service/notification"
	timesheetService "github.com/worklog-hq/timesheet-backend-go/internal/service/timesheet"
	userService "github.com/worklog-hq/timesheet-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn); err != nil {
		fmt.Println("Error running migrations:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	reviewRepo := postgresql.NewTimesheetReviewRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	relay := telegram.NewClient(cfg.Telegram)
	connectionHub := hub.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, connectionHub, logger)
	userSvc := userService.NewUserService(db, userRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		db,
		timesheetRepo,
		reviewRepo,
		userRepo,
		notificationSvc,
		relay,
		logger,
	)
	messageSvc := messageService.NewMessageService(userRepo, notificationSvc, relay, logger)

	gateway := ws.NewGateway(connectionHub, JWTService, logger)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	messageHandler := appHTTP.NewMessageHandler(messageSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		JWTService,
		gateway,
		timesheetHandler,
		notificationHandler,
		messageHandler,
		userHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
