package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	httpadp "glowdesk-backend/internal/adapter/http"
	"glowdesk-backend/internal/adapter/invoiceapi"
	"glowdesk-backend/internal/adapter/middleware"
	"glowdesk-backend/internal/adapter/repository/mysql"
	"glowdesk-backend/internal/config"
	approvalDomain "glowdesk-backend/internal/domain/approval"
	cashboxDomain "glowdesk-backend/internal/domain/cashbox"
	ledgerDomain "glowdesk-backend/internal/domain/ledger"
	payrollDomain "glowdesk-backend/internal/domain/payroll"
	"glowdesk-backend/internal/infrastructure/cache"
	"glowdesk-backend/internal/infrastructure/db"
	"glowdesk-backend/internal/usecase/approval"
	"glowdesk-backend/internal/usecase/cashbox"
	"glowdesk-backend/internal/usecase/payment"
	"glowdesk-backend/internal/usecase/payroll"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := gdb.AutoMigrate(
		&cashboxDomain.CashSession{},
		&ledgerDomain.CashTransaction{},
		&ledgerDomain.InvoicePayment{},
		&approvalDomain.ApprovalPolicy{},
		&approvalDomain.ApprovalRequest{},
		&payrollDomain.PayrollConfig{},
		&payrollDomain.PayrollCycle{},
		&payrollDomain.PayrollItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	invoices := invoiceapi.NewClient(cfg.InvoiceAPIBaseURL, log.With().Str("component", "invoiceapi").Logger())

	txm := mysql.NewGormUoW(gdb)
	approvalUC := approval.NewUsecase(txm, invoices, log.With().Str("usecase", "approval").Logger())
	cashboxUC := cashbox.NewUsecase(txm, approvalUC, log.With().Str("usecase", "cashbox").Logger())
	paymentUC := payment.NewUsecase(txm, log.With().Str("usecase", "payment").Logger())
	payrollUC := payroll.NewUsecase(txm, invoices, invoices, log.With().Str("usecase", "payroll").Logger())

	h := httpadp.NewHandler()
	cashboxH := httpadp.NewCashboxHandler(cashboxUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	payrollH := httpadp.NewPayrollHandler(payrollUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	v1 := e.Group("/v1")

	v1.POST("/cash-sessions", cashboxH.OpenSession)
	v1.GET("/cash-sessions/current", cashboxH.CurrentSession)
	v1.GET("/cash-sessions/current/snapshot", cashboxH.Snapshot)
	v1.POST("/cash-sessions/:session_id/close", cashboxH.CloseSession)
	v1.POST("/cash-transactions", cashboxH.CreateTransaction)
	v1.GET("/cash-sessions/:session_id/transactions", cashboxH.ListTransactions)

	v1.POST("/invoice-payments", paymentH.Record)
	v1.POST("/invoice-payments/:payment_id/confirm", paymentH.Confirm)
	v1.POST("/invoice-payments/:payment_id/fail", paymentH.Fail)
	v1.GET("/invoices/:invoice_id/payments", paymentH.ListByInvoice)

	v1.POST("/invoices/:invoice_id/refund", approvalH.RefundInvoice)
	v1.POST("/invoices/:invoice_id/cancel", approvalH.CancelInvoice)
	v1.GET("/approval-policy", approvalH.GetPolicy)
	v1.PUT("/approval-policy", approvalH.UpdatePolicy)
	v1.GET("/approval-requests", approvalH.ListRequests)
	v1.GET("/approval-requests/:request_id", approvalH.GetRequest)
	v1.POST("/approval-requests/:request_id/approve", approvalH.ApproveRequest)
	v1.POST("/approval-requests/:request_id/reject", approvalH.RejectRequest)

	v1.GET("/payroll-configs", payrollH.ListConfigs)
	v1.PUT("/payroll-configs/:staff_id", payrollH.UpsertConfig)
	v1.POST("/payroll-cycles/preview", payrollH.PreviewCycle)
	v1.POST("/payroll-cycles", payrollH.CreateCycle)
	v1.GET("/payroll-cycles", payrollH.ListCycles)
	v1.GET("/payroll-cycles/:cycle_id", payrollH.GetCycle)
	v1.POST("/payroll-cycles/:cycle_id/finalize", payrollH.FinalizeCycle)
	v1.POST("/payroll-cycles/:cycle_id/pay", payrollH.PayCycle)
	v1.PATCH("/payroll-items/:item_id", payrollH.UpdateItem)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
