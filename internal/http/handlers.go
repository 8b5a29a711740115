package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"financehub/internal/core"
	"financehub/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if err := s.ledger.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
		checks["database"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	traceMetrics := s.traceMiddleware.GetMetrics()
	checks["requests"] = map[string]any{
		"total":         traceMetrics.TotalRequests,
		"server_errors": traceMetrics.ServerErrors,
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"rejected":       s.rateLimiter.Hits(),
	}
	checks["security"] = map[string]any{
		"suspicious_requests": s.detector.GetMetrics().SuspiciousRequests,
	}

	NewJSONResponse().Status(httpStatus).Body(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// notFoundDetails are the client messages for missing entities.
var notFoundDetails = []struct {
	err    error
	detail string
}{
	{core.ErrAccountNotFound, "Conto non trovato"},
	{core.ErrTransactionNotFound, "Transazione non trovata"},
	{core.ErrInvestmentNotFound, "Investimento non trovato"},
	{core.ErrGoalNotFound, "Obiettivo non trovato"},
}

// writeServiceError maps an error from parsing or from the ledger to a
// {"detail": ...} response. Unexpected errors are logged and hidden.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var reqErr *requestError
	var fundsErr *core.InsufficientFundsError

	switch {
	case errors.As(err, &reqErr):
		ErrorResponse(reqErr.status, reqErr.detail).Write(w)
	case core.IsValidationError(err):
		UnprocessableEntityError(err.Error()).Write(w)
	case core.IsNotFound(err):
		for _, nf := range notFoundDetails {
			if errors.Is(err, nf.err) {
				NotFoundError(nf.detail).Write(w)
				return
			}
		}
		NotFoundError(err.Error()).Write(w)
	case errors.As(err, &fundsErr):
		BadRequestError(fundsErr.Error()).Write(w)
	case errors.Is(err, core.ErrAccountHasTransactions):
		BadRequestError("Impossibile eliminare: il conto ha transazioni associate").Write(w)
	case errors.Is(err, core.ErrAccountHasInvestments):
		BadRequestError("Impossibile eliminare: il conto ha investimenti associati").Write(w)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Request aborted", err, log.ErrorTypeTimeout, operation, nil)
		ErrorResponse(http.StatusServiceUnavailable, "Servizio temporaneamente non disponibile").Write(w)
	default:
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Ledger operation failed", err, log.ErrorTypeInternal, operation,
				log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", ""))
		InternalServerError("Errore interno del server").Write(w)
	}
}
