package main

import (
	"fmt"
	"net/http"

	"github.com/chandra447/dk-stores/internal/config"
	appHTTP "github.com/chandra447/dk-stores/internal/handler/http"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/pkg/oauth"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
	authService "github.com/chandra447/dk-stores/internal/service/auth"
	employeeService "github.com/chandra447/dk-stores/internal/service/employee"
	registerService "github.com/chandra447/dk-stores/internal/service/register"
	reportService "github.com/chandra447/dk-stores/internal/service/report"
	rollcallService "github.com/chandra447/dk-stores/internal/service/rollcall"
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
	registerRepo := postgresql.NewRegisterRepository(db)
	registerLogRepo := postgresql.NewRegisterLogRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	rollcallRepo := postgresql.NewRollcallRepository(db)
	breakLogRepo := postgresql.NewBreakLogRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, jwtSvc, jwtRepo)
	registerSvc := registerService.NewRegisterService(db, registerRepo, registerLogRepo, employeeRepo, rollcallRepo, breakLogRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, registerRepo, registerLogRepo, rollcallRepo, breakLogRepo, userRepo)
	rollcallSvc := rollcallService.NewRollcallService(db, rollcallRepo, breakLogRepo, registerRepo, registerLogRepo, employeeRepo)
	reportSvc := reportService.NewReportService(reportRepo, registerRepo, registerLogRepo, employeeRepo, breakLogRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	registerHandler := appHTTP.NewRegisterHandler(registerSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	rollcallHandler := appHTTP.NewRollcallHandler(rollcallSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigin: cfg.App.FrontendURL,
			Env:           cfg.App.Env,
			GoogleEnabled: cfg.GoogleEnabled(),
		},
		jwtSvc,
		authHandler,
		registerHandler,
		employeeHandler,
		rollcallHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
