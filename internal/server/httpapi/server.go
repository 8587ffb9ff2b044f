// Package httpapi exposes the lending, settlement and member services over a
// JSON REST API.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/logging"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/services"
)

// Server wires the application services into gin handlers.
type Server struct {
	lending    *services.LendingService
	settlement *services.SettlementService
	members    *services.MemberService
	logger     logging.Logger
	secretKey  []byte

	httpServer *http.Server
}

func NewServer(lending *services.LendingService, settlement *services.SettlementService,
	members *services.MemberService, logger logging.Logger, secretKey []byte) *Server {
	return &Server{
		lending:    lending,
		settlement: settlement,
		members:    members,
		logger:     logger.With("module", "httpapi"),
		secretKey:  secretKey,
	}
}

// Router builds the route table. Everything except registration and login
// sits behind the bearer token middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("")
	authed.Use(s.authMiddleware())
	authed.POST("/copies", s.registerCopy)
	authed.POST("/copies/:copyId/borrow", s.borrowCopy)
	authed.POST("/copies/:copyId/return", s.returnCopy)
	authed.POST("/borrowings/:borrowingId/settle", s.settleFine)
	authed.GET("/borrowings/overdue", s.listOverdue)
	authed.PATCH("/members/:memberId/membership", s.setMembership)
	authed.GET("/members/:memberId/fines", s.listFines)
	authed.GET("/members/:memberId/payments", s.listPayments)

	return r
}

// Run serves the API on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server started", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	}
}

// writeError maps service errors onto HTTP statuses, go-banking style single
// "error" field bodies.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrCopyNotFound),
		errors.Is(err, common.ErrBorrowingNotFound),
		errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrCopyNotAvailable),
		errors.Is(err, common.ErrCopyNotIssued),
		errors.Is(err, common.ErrCopyAlreadyExists),
		errors.Is(err, common.ErrAlreadySettled),
		errors.Is(err, common.ErrNothingToSettle),
		errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrBorrowerNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
