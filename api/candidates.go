package api

import (
	"net/http"

	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/pkg/models"
)

type CandidatesHandler struct {
	portal *portal.Portal
}

func NewCandidatesHandler(p *portal.Portal) *CandidatesHandler {
	return &CandidatesHandler{portal: p}
}

// List returns the candidates matching the positionId, experience and
// location query parameters. Absent parameters do not constrain the result.
func (h *CandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CandidateFilter{
		PositionID: q.Get("positionId"),
		Experience: q.Get("experience"),
		Location:   q.Get("location"),
	}

	var resp candidateListResponse
	id, _ := IdentityID(r.Context())
	err := h.portal.Do(r.Context(), id, func(ws portal.Workspace) error {
		cs, err := ws.Candidates.Filter(filter)
		resp.Candidates = cs
		resp.Count = len(cs)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}
