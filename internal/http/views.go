package http

import (
	"time"

	"financehub/internal/core"
)

// wireTimeLayout renders timestamps as naive local ISO datetimes, the format
// existing clients of the API parse.
const wireTimeLayout = "2006-01-02T15:04:05"

func wireTime(t time.Time) string {
	return t.In(time.Local).Format(wireTimeLayout)
}

type accountView struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	Tipo      string  `json:"tipo"`
	Saldo     float64 `json:"saldo"`
	CreatedAt string  `json:"created_at"`
}

func newAccountView(a core.Account) accountView {
	return accountView{
		ID:        a.ID,
		Nome:      a.Name,
		Tipo:      a.Type,
		Saldo:     core.Display(a.Balance),
		CreatedAt: wireTime(a.CreatedAt),
	}
}

type transactionView struct {
	ID          int64   `json:"id"`
	ContoID     int64   `json:"conto_id"`
	Tipo        string  `json:"tipo"`
	Categoria   string  `json:"categoria"`
	Importo     float64 `json:"importo"`
	Descrizione string  `json:"descrizione"`
	Data        string  `json:"data"`
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		ContoID:     t.AccountID,
		Tipo:        string(t.Kind),
		Categoria:   t.Category,
		Importo:     core.Display(t.Amount),
		Descrizione: t.Description,
		Data:        wireTime(t.Date),
	}
}

type investmentView struct {
	ID                    int64   `json:"id"`
	ContoID               int64   `json:"conto_id"`
	Nome                  string  `json:"nome"`
	Tipo                  string  `json:"tipo"`
	ImportoIniziale       float64 `json:"importo_iniziale"`
	ValoreAttuale         float64 `json:"valore_attuale"`
	Rendimento            float64 `json:"rendimento"`
	RendimentoPercentuale float64 `json:"rendimento_percentuale"`
	DataInizio            string  `json:"data_inizio"`
}

func newInvestmentView(inv core.Investment) investmentView {
	return investmentView{
		ID:                    inv.ID,
		ContoID:               inv.AccountID,
		Nome:                  inv.Name,
		Tipo:                  inv.Type,
		ImportoIniziale:       core.Display(inv.InitialAmount),
		ValoreAttuale:         core.Display(inv.CurrentValue),
		Rendimento:            core.Display(inv.Return),
		RendimentoPercentuale: core.Display(core.InvestmentReturnPercent(inv)),
		DataInizio:            wireTime(inv.StartDate),
	}
}

type goalView struct {
	ID             int64   `json:"id"`
	Titolo         string  `json:"titolo"`
	Descrizione    string  `json:"descrizione"`
	ImportoTarget  float64 `json:"importo_target"`
	ImportoAttuale float64 `json:"importo_attuale"`
	Completato     bool    `json:"completato"`
	Progresso      float64 `json:"progresso"`
	DataCreazione  string  `json:"data_creazione"`
}

func newGoalView(g core.Goal) goalView {
	return goalView{
		ID:             g.ID,
		Titolo:         g.Title,
		Descrizione:    g.Description,
		ImportoTarget:  core.Display(g.TargetAmount),
		ImportoAttuale: core.Display(g.CurrentAmount),
		Completato:     g.Completed,
		Progresso:      core.Display(core.GoalProgress(g)),
		DataCreazione:  wireTime(g.CreatedAt),
	}
}

type dashboardView struct {
	SaldoTotale       float64 `json:"saldo_totale"`
	VariazioneMensile float64 `json:"variazione_mensile"`
	Investimenti      struct {
		Totale     float64 `json:"totale"`
		Rendimento float64 `json:"rendimento"`
	} `json:"investimenti"`
	SpeseMensili float64 `json:"spese_mensili"`
	Obiettivi    struct {
		Totale     int `json:"totale"`
		Completati int `json:"completati"`
	} `json:"obiettivi"`
}

func newDashboardView(d core.Dashboard) dashboardView {
	var v dashboardView
	v.SaldoTotale = core.Display(d.TotalBalance)
	v.VariazioneMensile = core.Display(d.MonthlyDelta)
	v.Investimenti.Totale = core.Display(d.InvestmentValue)
	v.Investimenti.Rendimento = core.Display(d.InvestmentReturn)
	v.SpeseMensili = core.Display(d.MonthlyExpense)
	v.Obiettivi.Totale = d.Goals
	v.Obiettivi.Completati = d.GoalsCompleted
	return v
}

type categoryStatView struct {
	Categoria string  `json:"categoria"`
	Totale    float64 `json:"totale"`
	Count     int     `json:"count"`
}

type trendView struct {
	Mesi    []string  `json:"mesi"`
	Entrate []float64 `json:"entrate"`
	Uscite  []float64 `json:"uscite"`
}

func newTrendView(tr core.Trend) trendView {
	v := trendView{
		Mesi:    tr.Labels,
		Entrate: make([]float64, len(tr.Income)),
		Uscite:  make([]float64, len(tr.Expense)),
	}
	for i := range tr.Income {
		v.Entrate[i] = core.Display(tr.Income[i])
	}
	for i := range tr.Expense {
		v.Uscite[i] = core.Display(tr.Expense[i])
	}
	return v
}

// mapSlice converts entities to views, always returning a non-nil slice so
// empty listings encode as [].
func mapSlice[T, V any](items []T, f func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
