// Package http exposes the ledger as a JSON API.
//
// This file implements utilities for parsing and validating HTTP request data:
// JSON bodies, path ids, query parameters and the date formats clients send.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financehub/internal/core"
	"financehub/internal/services"

	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// requestError is a client error detected before reaching the service.
type requestError struct {
	status int
	detail string
}

func (e *requestError) Error() string { return e.detail }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, detail: fmt.Sprintf(format, args...)}
}

func unprocessable(format string, args ...any) error {
	return &requestError{status: http.StatusUnprocessableEntity, detail: fmt.Sprintf(format, args...)}
}

// decodeJSON decodes a single JSON object from the request body into dst.
// Malformed JSON is a 400, well-formed JSON with wrong types a 422.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	var reqErr *requestError
	switch {
	case err == nil:
	case errors.As(err, &reqErr):
		return reqErr
	case errors.Is(err, io.EOF):
		return unprocessable("Corpo della richiesta mancante")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return badRequest("JSON non valido")
	case errors.As(err, &maxErr):
		return &requestError{status: http.StatusRequestEntityTooLarge, detail: "Corpo della richiesta troppo grande"}
	case errors.As(err, &typeErr):
		return unprocessable("Valore non valido per il campo '%s'", typeErr.Field)
	default:
		return unprocessable("Valore non valido: %v", err)
	}

	if dec.More() {
		return badRequest("JSON non valido")
	}
	return nil
}

// amountField is a monetary request field. It accepts a JSON number or a
// string, with either a dot or a comma as decimal separator.
type amountField decimal.Decimal

func (a *amountField) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return unprocessable("Importo non valido")
		}
	}
	d, err := core.ParseAmount(raw)
	if err != nil {
		return unprocessable("Importo non valido: '%s'", strings.TrimSpace(raw))
	}
	*a = amountField(d)
	return nil
}

func (a amountField) Decimal() decimal.Decimal { return decimal.Decimal(a) }

// requireField reports a missing mandatory body field.
func requireField(present bool, name string) error {
	if !present {
		return unprocessable("Campo obbligatorio mancante: %s", name)
	}
	return nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, unprocessable("ID non valido: '%s'", raw)
	}
	return id, nil
}

// parseLimit reads the limit query parameter. Missing or invalid values fall
// back to the default listing size.
func parseLimit(r *http.Request) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("limit")))
	if err != nil {
		return services.DefaultTransactionLimit
	}
	return services.NormalizeLimit(n)
}

// Accepted transaction date layouts. Layouts without a zone are read in the
// server's local time zone.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate parses a client supplied date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, unprocessable("Data non valida: '%s'", s)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
