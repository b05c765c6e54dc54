package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/config"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	appHTTP "github.com/shiftlog-hq/timetracker-backend-go/internal/handler/http"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/database"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/repository/postgresql"
	authService "github.com/shiftlog-hq/timetracker-backend-go/internal/service/auth"
	timeLogService "github.com/shiftlog-hq/timetracker-backend-go/internal/service/timelog"
	userService "github.com/shiftlog-hq/timetracker-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	calculator, err := timeLogService.NewHoursCalculator(timelog.Policy(cfg.Hours.Policy))
	if err != nil {
		log.Fatal("Failed to initialize hours calculator:", err)
	}
	aggregator := timeLogService.NewStatsAggregator(cfg.Location())

	authSvc := authService.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(db, userRepo, timeLogRepo)
	timeLogSvc := timeLogService.NewTimeLogService(timeLogRepo, calculator, aggregator)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc, authSvc)
	timeLogHandler := appHTTP.NewTimeLogHandler(timeLogSvc)

	router := appHTTP.NewRouter(cfg, JWTService, authHandler, userHandler, timeLogHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
