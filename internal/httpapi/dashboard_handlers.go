package httpapi

import (
	"net/http"
	"time"

	"revpulse.io/internal/auth"
	"revpulse.io/internal/revenue"
)

type transactionsResponse struct {
	Items []revenue.Transaction `json:"items"`
	AsOf  time.Time             `json:"as_of"`
}

type simulationResponse struct {
	Live bool      `json:"live"`
	AsOf time.Time `json:"as_of"`
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, a.sim.Snapshot())
}

func (a *API) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	items := a.sim.Transactions()
	if items == nil {
		items = []revenue.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactionsResponse{
		Items: items,
		AsOf:  time.Now().UTC(),
	})
}

func (a *API) handleSimulation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, simulationResponse{
		Live: a.sim.Live(),
		AsOf: time.Now().UTC(),
	})
}

func (a *API) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if !auth.HasRole(r.Context(), auth.RoleOperator) {
		writeError(w, r, http.StatusForbidden, "operator role required")
		return
	}
	a.sim.Pause()
	a.audit(r, "simulation.pause", map[string]any{"live": false})
	writeJSON(w, http.StatusOK, simulationResponse{
		Live: a.sim.Live(),
		AsOf: time.Now().UTC(),
	})
}

func (a *API) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if !auth.HasRole(r.Context(), auth.RoleOperator) {
		writeError(w, r, http.StatusForbidden, "operator role required")
		return
	}
	a.sim.Resume()
	a.audit(r, "simulation.resume", map[string]any{"live": true})
	writeJSON(w, http.StatusOK, simulationResponse{
		Live: a.sim.Live(),
		AsOf: time.Now().UTC(),
	})
}
