package http

import (
	"net/http"

	"financehub/internal/core"
	"financehub/internal/log"
)

type createTransactionRequest struct {
	ContoID     *int64       `json:"conto_id"`
	Tipo        *string      `json:"tipo"`
	Categoria   *string      `json:"categoria"`
	Importo     *amountField `json:"importo"`
	Descrizione string       `json:"descrizione"`
	Data        *string      `json:"data"`
}

func (req createTransactionRequest) toInput() (core.NewTransaction, error) {
	for _, f := range []struct {
		present bool
		name    string
	}{
		{req.ContoID != nil, "conto_id"},
		{req.Tipo != nil, "tipo"},
		{req.Categoria != nil, "categoria"},
		{req.Importo != nil, "importo"},
	} {
		if err := requireField(f.present, f.name); err != nil {
			return core.NewTransaction{}, err
		}
	}

	in := core.NewTransaction{
		AccountID:   *req.ContoID,
		Kind:        core.Kind(sanitizeInput(*req.Tipo)),
		Category:    sanitizeInput(*req.Categoria),
		Amount:      req.Importo.Decimal(),
		Description: sanitizeInput(req.Descrizione),
	}
	if req.Data != nil && sanitizeInput(*req.Data) != "" {
		date, err := parseDate(*req.Data)
		if err != nil {
			return core.NewTransaction{}, err
		}
		in.Date = date
	}
	return in, nil
}

// handleListTransactions returns the latest transactions, newest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.Transactions(r.Context(), parseLimit(r))
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(mapSlice(txs, newTransactionView)).Write(w)
}

// handleAccountTransactions returns every transaction of one account. An
// unknown account yields an empty list.
func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	txs, err := s.ledger.TransactionsByAccount(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(mapSlice(txs, newTransactionView)).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	tx, err := s.ledger.CreateTransaction(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().Created(tx.ID, "Transazione creata con successo").Write(w)
}

// handleDeleteTransaction removes a transaction and reverts its effect on
// the account balance.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().Message("Transazione eliminata con successo").Write(w)
}
