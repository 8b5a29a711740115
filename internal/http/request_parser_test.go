package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-15", time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)},
		{"2025-03-15T10:30", time.Date(2025, 3, 15, 10, 30, 0, 0, time.Local)},
		{"2025-03-15T10:30:45", time.Date(2025, 3, 15, 10, 30, 45, 0, time.Local)},
		{"2025-03-15 10:30:45.5", time.Date(2025, 3, 15, 10, 30, 45, 500000000, time.Local)},
		{" 2025-03-15 ", time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)},
		{"2025-03-15T10:30:45Z", time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if err != nil {
			t.Fatalf("parseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parseDate(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "15/03/2025", "2025-13-01", "ieri"} {
		_, err := parseDate(in)
		var reqErr *requestError
		if !errors.As(err, &reqErr) || reqErr.status != http.StatusUnprocessableEntity {
			t.Fatalf("parseDate(%q) err=%v, want 422 request error", in, err)
		}
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 50},
		{"limit=10", 10},
		{"limit=abc", 50},
		{"limit=-3", 50},
		{"limit=0", 50},
		{"limit=5000", 1000},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/transazioni?"+tt.query, nil)
		if got := parseLimit(r); got != tt.want {
			t.Fatalf("parseLimit(%q)=%d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/conti/42", nil)
	r.SetPathValue("id", "42")
	id, err := pathID(r)
	if err != nil || id != 42 {
		t.Fatalf("pathID=%d, %v", id, err)
	}

	r.SetPathValue("id", "4x")
	_, err = pathID(r)
	var reqErr *requestError
	if !errors.As(err, &reqErr) || reqErr.detail != "ID non valido: '4x'" {
		t.Fatalf("pathID err=%v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Spesa\x00 casa\x07 "); got != "Spesa casa" {
		t.Fatalf("sanitizeInput=%q", got)
	}
}

func TestAmountFieldUnmarshal(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"importo":12.34}`, "12.34"},
		{`{"importo":"12.34"}`, "12.34"},
		{`{"importo":"12,34"}`, "12.34"},
		{`{"importo":" -7,5 "}`, "-7.5"},
		{`{"importo":1e3}`, "1000"},
		{`{"importo":"1.005"}`, "1.005"},
	}
	for _, tt := range tests {
		var req struct {
			Importo *amountField `json:"importo"`
		}
		if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if req.Importo == nil || !req.Importo.Decimal().Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("unmarshal %s got %v, want %s", tt.body, req.Importo, tt.want)
		}
	}

	var req struct {
		Importo *amountField `json:"importo"`
	}
	if err := json.Unmarshal([]byte(`{"importo":null}`), &req); err != nil || req.Importo != nil {
		t.Fatalf("null importo: %v, %v", req.Importo, err)
	}

	for _, body := range []string{`{"importo":"abc"}`, `{"importo":"1,2,3"}`, `{"importo":""}`, `{"importo":true}`} {
		err := json.Unmarshal([]byte(body), &req)
		var reqErr *requestError
		if !errors.As(err, &reqErr) || reqErr.status != http.StatusUnprocessableEntity {
			t.Fatalf("unmarshal %s err=%v, want 422 request error", body, err)
		}
	}
}
