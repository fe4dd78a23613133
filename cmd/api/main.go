package main

import (
	"fmt"
	"net/http"

	"github.com/shiftpulse/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftpulse/timeclock-backend-go/internal/handler/http"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftpulse/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftpulse/timeclock-backend-go/internal/service/attendance"
	laborCostService "github.com/shiftpulse/timeclock-backend-go/internal/service/laborcost"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	laborCostRepo := postgresql.NewLaborCostRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clk := clock.New()

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, clk)
	laborCostSvc := laborCostService.NewLaborCostService(laborCostRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(clk)
	laborCostHandler := appHTTP.NewLaborCostHandler(laborCostSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		attendanceHandler,
		payPeriodHandler,
		laborCostHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
