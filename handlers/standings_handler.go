package handlers

import (
	"net/http"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
	}
}

func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	series, err := models.ParseSeries(r.URL.Query().Get("series"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	division, err := models.ParseDivision(r.URL.Query().Get("division"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), series, division)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
