package handlers

import (
	"net/http"

	"github.com/ligaregional/league-system/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{
		fixtureService: fixtureService,
	}
}

// PreviewFixture generates a round-robin schedule for review. Nothing
// is persisted until the caller commits the rounds.
func (h *FixtureHandler) PreviewFixture(w http.ResponseWriter, r *http.Request) {
	var input services.PreviewFixtureInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rounds, err := h.fixtureService.PreviewFixture(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) CommitFixture(w http.ResponseWriter, r *http.Request) {
	var input services.CommitFixtureInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.fixtureService.CommitFixture(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches_created": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
