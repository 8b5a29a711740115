package http

import (
	"net/http"

	"financehub/internal/core"
	"financehub/internal/log"
)

type createAccountRequest struct {
	Nome  *string      `json:"nome"`
	Tipo  *string      `json:"tipo"`
	Saldo *amountField `json:"saldo"`
}

func (req createAccountRequest) toInput() (core.NewAccount, error) {
	if err := requireField(req.Nome != nil, "nome"); err != nil {
		return core.NewAccount{}, err
	}
	if err := requireField(req.Tipo != nil, "tipo"); err != nil {
		return core.NewAccount{}, err
	}
	in := core.NewAccount{
		Name: sanitizeInput(*req.Nome),
		Type: sanitizeInput(*req.Tipo),
	}
	if req.Saldo != nil {
		in.OpeningBalance = req.Saldo.Decimal()
	}
	return in, nil
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.Accounts(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(mapSlice(accounts, newAccountView)).Write(w)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	account, err := s.ledger.Account(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(newAccountView(account)).Write(w)
}

// handleCreateAccount opens an account. A non-zero saldo is booked as the
// opening transaction.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	account, err := s.ledger.CreateAccount(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().Created(account.ID, "Conto creato con successo").Write(w)
}

// handleDeleteAccount removes an account with no transactions or investments.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteAccount(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().Message("Conto eliminato con successo").Write(w)
}
