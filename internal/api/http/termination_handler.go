package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/service"
)

// TerminationHandler exposes the termination workflow and the deposit
// settlement surface.
type TerminationHandler struct {
	termSvc service.TerminationService
}

func NewTerminationHandler(termSvc service.TerminationService) *TerminationHandler {
	return &TerminationHandler{termSvc: termSvc}
}

func (h *TerminationHandler) respondCase(w http.ResponseWriter, status int, lease *domain.Lease, sv *service.SettlementView) {
	respondJSON(w, status, map[string]interface{}{
		"lease":      lease,
		"settlement": sv,
	})
}

type requestTerminationRequest struct {
	MoveOutDate string `json:"move_out_date"`
	Reason      string `json:"reason"`
}

func (h *TerminationHandler) RequestTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req requestTerminationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, sv, err := h.termSvc.RequestTermination(r.Context(), actorID(r), leaseID, req.MoveOutDate, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusCreated, lease, sv)
}

type initiateTerminationRequest struct {
	MoveOutDate string             `json:"move_out_date"`
	Reason      string             `json:"reason"`
	Deductions  []domain.Deduction `json:"deductions"`
}

func (h *TerminationHandler) InitiateTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req initiateTerminationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, sv, err := h.termSvc.InitiateTermination(r.Context(), actorID(r), leaseID, req.MoveOutDate, req.Reason, req.Deductions)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusCreated, lease, sv)
}

func (h *TerminationHandler) ConfirmTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, sv, err := h.termSvc.ConfirmTermination(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}

func (h *TerminationHandler) RejectTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, err := h.termSvc.RejectTermination(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lease)
}

func (h *TerminationHandler) CancelTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, err := h.termSvc.CancelTermination(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lease)
}

func (h *TerminationHandler) CompleteTermination(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, sv, err := h.termSvc.CompleteTermination(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}

// GetSettlement previews the deposit settlement. "move_out_date" feeds the
// hypothetical calculation when no case is open; "on" overrides the viewing
// date. Both are ignored once a case exists.
func (h *TerminationHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	moveOutDate := r.URL.Query().Get("move_out_date")
	now, err := viewingTime(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sv, err := h.termSvc.PreviewSettlement(r.Context(), actorID(r), leaseID, moveOutDate, now)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sv)
}

type deductionRequest struct {
	Reason      string `json:"reason"`
	AmountCents int64  `json:"amount_cents"`
}

func (h *TerminationHandler) AddDeduction(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req deductionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, sv, err := h.termSvc.AddDeduction(r.Context(), actorID(r), leaseID, req.Reason, req.AmountCents)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusCreated, lease, sv)
}

func (h *TerminationHandler) UpdateDeduction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	leaseID := vars["id"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, errors.New("invalid deduction index"))
		return
	}

	var req deductionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, sv, err := h.termSvc.UpdateDeduction(r.Context(), actorID(r), leaseID, index, req.Reason, req.AmountCents)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}

func (h *TerminationHandler) RemoveDeduction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	leaseID := vars["id"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, errors.New("invalid deduction index"))
		return
	}

	lease, sv, err := h.termSvc.RemoveDeduction(r.Context(), actorID(r), leaseID, index)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}

type returnOverrideRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (h *TerminationHandler) SetReturnOverride(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req returnOverrideRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, sv, err := h.termSvc.SetReturnOverride(r.Context(), actorID(r), leaseID, req.AmountCents)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}

func (h *TerminationHandler) ClearReturnOverride(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, sv, err := h.termSvc.ClearReturnOverride(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondCase(w, http.StatusOK, lease, sv)
}
