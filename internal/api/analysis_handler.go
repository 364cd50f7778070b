package api

import (
	"net/http"

	"github.com/rgoyal/flipfolio/internal/engine"
	"github.com/rgoyal/flipfolio/internal/middleware"
)

// handleRunAnalysis recomputes the full analysis for a listing from the deal
// inputs in the request body. Fields the client omits are seeded from the
// listing and the previously saved analysis, so a client can POST an empty
// object to get a first-pass result.
func (a *API) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var inputs engine.DealInputs
	if err := decodeJSON(r, &inputs); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.analyses.Run(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), inputs)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ok, err := a.analyses.Latest(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !ok {
		writeErrorMsg(w, http.StatusNotFound, "no analysis for listing")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
