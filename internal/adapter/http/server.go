package http

import (
	"github.com/gin-gonic/gin"

	"github.com/oasisfintech/oasis-backend/internal/adapter/session"
	"github.com/oasisfintech/oasis-backend/internal/logger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/access"
	"github.com/oasisfintech/oasis-backend/internal/usecase/fraud"
	"github.com/oasisfintech/oasis-backend/internal/usecase/ledger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/reconcile"
	"github.com/oasisfintech/oasis-backend/internal/usecase/report"
	"github.com/oasisfintech/oasis-backend/internal/usecase/transfer"
)

// Server wires the core engines to the HTTP surface.
type Server struct {
	ledger    *ledger.Service
	fraud     *fraud.Engine
	reconcile *reconcile.Engine
	transfer  *transfer.Service
	report    *report.Service
	policy    *access.Policy
	sessions  session.Store
	log       *logger.Logger
}

// NewServer creates a new HTTP Server instance
func NewServer(
	ledgerService *ledger.Service,
	fraudEngine *fraud.Engine,
	reconcileEngine *reconcile.Engine,
	transferService *transfer.Service,
	reportService *report.Service,
	policy *access.Policy,
	sessions session.Store,
	log *logger.Logger,
) *Server {
	return &Server{
		ledger:    ledgerService,
		fraud:     fraudEngine,
		reconcile: reconcileEngine,
		transfer:  transferService,
		report:    reportService,
		policy:    policy,
		sessions:  sessions,
		log:       log.With("service", "http"),
	}
}

// Router builds the gin engine with all routes and middleware registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/health", s.handleHealth)

	router.POST("/api/sessions", s.handleCreateSession)
	router.DELETE("/api/sessions/:id", s.handleDeleteSession)

	authed := router.Group("/api", s.RequireSession())
	{
		authed.POST("/accounts", s.RequireAction("view"), s.handleCreateAccount)
		authed.GET("/accounts/:id", s.RequireAction("view"), s.handleGetAccount)

		authed.POST("/ledger", s.RequireAction("transfer"), s.handlePostEntry)
		authed.GET("/ledger/:accountId", s.RequireAction("view"), s.handleGetEntries)

		authed.POST("/ach", s.RequireAction("transfer"), s.handleInitiateAch)

		// Back-office operations: only admin passes.
		authed.POST("/reconciliation", s.RequireAction("reconcile"), s.handleReconcile)
		authed.GET("/fraud/alerts", s.RequireAction("fraud"), s.handleListAlerts)
		authed.GET("/reports/monthly", s.RequireAction("report"), s.handleMonthlyReport)
	}

	return router
}
