package http

import (
	"net/http"

	"financehub/internal/core"
	"financehub/internal/log"
)

type createGoalRequest struct {
	Titolo         *string      `json:"titolo"`
	Descrizione    string       `json:"descrizione"`
	ImportoTarget  *amountField `json:"importo_target"`
	ImportoAttuale *amountField `json:"importo_attuale"`
}

func (req createGoalRequest) toInput() (core.NewGoal, error) {
	if err := requireField(req.Titolo != nil, "titolo"); err != nil {
		return core.NewGoal{}, err
	}
	if err := requireField(req.ImportoTarget != nil, "importo_target"); err != nil {
		return core.NewGoal{}, err
	}
	in := core.NewGoal{
		Title:        sanitizeInput(*req.Titolo),
		Description:  sanitizeInput(req.Descrizione),
		TargetAmount: req.ImportoTarget.Decimal(),
	}
	if req.ImportoAttuale != nil {
		in.CurrentAmount = req.ImportoAttuale.Decimal()
	}
	return in, nil
}

type updateGoalRequest struct {
	ImportoAttuale *amountField `json:"importo_attuale"`
}

// handleListGoals returns open goals first, newest first within each group.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.ledger.Goals(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(mapSlice(goals, newGoalView)).Write(w)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	goal, err := s.ledger.CreateGoal(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().Created(goal.ID, "Obiettivo creato con successo").Write(w)
}

// handleUpdateGoal sets the saved amount and recomputes completion.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	var req updateGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	if err := requireField(req.ImportoAttuale != nil, "importo_attuale"); err != nil {
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}

	if _, err := s.ledger.UpdateGoalAmount(r.Context(), id, req.ImportoAttuale.Decimal()); err != nil {
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}

	NewJSONResponse().Message("Obiettivo aggiornato con successo").Write(w)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteGoal(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().Message("Obiettivo eliminato con successo").Write(w)
}
