package http

import (
	"net/http"

	"financehub/internal/core"
	"financehub/internal/log"
)

type createInvestmentRequest struct {
	ContoID         *int64       `json:"conto_id"`
	Nome            *string      `json:"nome"`
	Tipo            *string      `json:"tipo"`
	ImportoIniziale *amountField `json:"importo_iniziale"`
	ValoreAttuale   *amountField `json:"valore_attuale"`
}

func (req createInvestmentRequest) toInput() (core.NewInvestment, error) {
	for _, f := range []struct {
		present bool
		name    string
	}{
		{req.ContoID != nil, "conto_id"},
		{req.Nome != nil, "nome"},
		{req.Tipo != nil, "tipo"},
		{req.ImportoIniziale != nil, "importo_iniziale"},
		{req.ValoreAttuale != nil, "valore_attuale"},
	} {
		if err := requireField(f.present, f.name); err != nil {
			return core.NewInvestment{}, err
		}
	}
	return core.NewInvestment{
		AccountID:     *req.ContoID,
		Name:          sanitizeInput(*req.Nome),
		Type:          sanitizeInput(*req.Tipo),
		InitialAmount: req.ImportoIniziale.Decimal(),
		CurrentValue:  req.ValoreAttuale.Decimal(),
	}, nil
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	invs, err := s.ledger.Investments(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(mapSlice(invs, newInvestmentView)).Write(w)
}

// handleCreateInvestment buys an investment with funds from the account.
// The purchase fails with 400 when the balance does not cover it.
func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req createInvestmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	inv, err := s.ledger.CreateInvestment(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().Created(inv.ID, "Investimento creato con successo").Write(w)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteInvestment(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().Message("Investimento eliminato con successo").Write(w)
}
