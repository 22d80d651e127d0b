package api

import (
	"net/http"

	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/pkg/models"
)

type ProfileHandler struct {
	portal  *portal.Portal
	schemas *schema.Loader
}

func NewProfileHandler(p *portal.Portal, schemas *schema.Loader) *ProfileHandler {
	return &ProfileHandler{portal: p, schemas: schemas}
}

type profileResponse struct {
	envelope
	User models.Identity `json:"user"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityID(r.Context())
	cur, err := h.portal.Authorize(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, profileResponse{envelope: envelope{Success: true}, User: cur}, http.StatusOK)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := decodeBody(w, r, h.schemas, schema.ProfileUpdate, &upd); err != nil {
		writeDomainError(w, err)
		return
	}

	id, _ := IdentityID(r.Context())
	updated, err := h.portal.UpdateProfile(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, profileResponse{envelope: envelope{Success: true}, User: *updated}, http.StatusOK)
}
