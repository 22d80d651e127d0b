package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/positions"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/pkg/models"
)

type PositionsHandler struct {
	portal  *portal.Portal
	schemas *schema.Loader
}

func NewPositionsHandler(p *portal.Portal, schemas *schema.Loader) *PositionsHandler {
	return &PositionsHandler{portal: p, schemas: schemas}
}

type positionResponse struct {
	envelope
	Position models.Position `json:"position"`
}

type positionListResponse struct {
	envelope
	Positions []models.Position `json:"positions"`
}

type statsResponse struct {
	envelope
	Stats models.PositionStats `json:"stats"`
}

type candidateListResponse struct {
	envelope
	Candidates []models.Candidate `json:"candidates"`
	Count      int                `json:"count"`
}

var errExperienceOrder = fmt.Errorf("%w: experienceMin must not exceed experienceMax", errBadRequest)

// List returns the owner's positions, narrowed by the optional q parameter
// (title or category substring).
func (h *PositionsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var resp positionListResponse
	err := h.do(r, func(ws portal.Workspace) error {
		resp.Positions = ws.Positions.Search(query)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}

func (h *PositionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PositionInput
	if err := decodeBody(w, r, h.schemas, schema.Position, &in); err != nil {
		writeDomainError(w, err)
		return
	}
	if in.ExperienceMin > in.ExperienceMax {
		writeDomainError(w, errExperienceOrder)
		return
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	var resp positionResponse
	err := h.do(r, func(ws portal.Workspace) error {
		p, err := ws.Positions.Add(r.Context(), in)
		resp.Position = p
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusCreated)
}

func (h *PositionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var resp statsResponse
	err := h.do(r, func(ws portal.Workspace) error {
		resp.Stats = ws.Positions.Stats()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}

func (h *PositionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var resp positionResponse
	err := h.do(r, func(ws portal.Workspace) error {
		p, ok := ws.Positions.Get(id)
		if !ok {
			return positions.ErrNotFound
		}
		resp.Position = p
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}

func (h *PositionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd models.PositionUpdate
	if err := decodeBody(w, r, h.schemas, schema.PositionUpdate, &upd); err != nil {
		writeDomainError(w, err)
		return
	}

	var resp positionResponse
	err := h.do(r, func(ws portal.Workspace) error {
		current, ok := ws.Positions.Get(id)
		if !ok {
			return positions.ErrNotFound
		}
		upd.Apply(&current)
		if current.ExperienceMin > current.ExperienceMax {
			return errExperienceOrder
		}

		p, err := ws.Positions.Update(r.Context(), id, upd)
		resp.Position = p
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}

func (h *PositionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.do(r, func(ws portal.Workspace) error {
		return ws.Positions.Remove(r.Context(), id)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, envelope{Success: true}, http.StatusOK)
}

// Candidates lists the candidates linked to a position. The count is the
// number of linked candidates, not the position's candidateCount.
func (h *PositionsHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var resp candidateListResponse
	err := h.do(r, func(ws portal.Workspace) error {
		resp.Candidates = ws.Candidates.ByPosition(id)
		resp.Count = len(resp.Candidates)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Success = true
	writeJSON(w, resp, http.StatusOK)
}

func (h *PositionsHandler) do(r *http.Request, fn func(ws portal.Workspace) error) error {
	id, _ := IdentityID(r.Context())
	return h.portal.Do(r.Context(), id, fn)
}
