package http

import (
	"net/http"

	"financehub/internal/core"
)

// handleDashboard returns the aggregated overview: total balance, the
// current month delta and expenses, investments and goal counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.ledger.Dashboard(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "dashboard", err)
		return
	}
	NewJSONResponse().Body(newDashboardView(d)).Write(w)
}

// handleCategoryStats returns the current month expenses grouped by category.
func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ledger.CategoryStats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "category_stats", err)
		return
	}
	NewJSONResponse().Body(mapSlice(stats, func(st core.CategoryStat) categoryStatView {
		return categoryStatView{
			Categoria: st.Category,
			Totale:    core.Display(st.Total),
			Count:     st.Count,
		}
	})).Write(w)
}

// handleTrendChart returns the monthly income/expense series for the chart.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	tr, err := s.ledger.Trend(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "trend", err)
		return
	}
	NewJSONResponse().Body(newTrendView(tr)).Write(w)
}
