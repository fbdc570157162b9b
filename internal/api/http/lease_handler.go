package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/service"
)

// LeaseHandler exposes lease CRUD, status projection and the tenant
// renewal response.
type LeaseHandler struct {
	leaseSvc service.LeaseService
	noteSvc  service.NotificationService
}

func NewLeaseHandler(leaseSvc service.LeaseService, noteSvc service.NotificationService) *LeaseHandler {
	return &LeaseHandler{leaseSvc: leaseSvc, noteSvc: noteSvc}
}

type createLeaseRequest struct {
	TenantID      string  `json:"tenant_id"`
	PropertyLabel string  `json:"property_label"`
	ContractStart *string `json:"contract_start"`
	ContractEnd   *string `json:"contract_end"`
	RentCents     int64   `json:"rent_cents"`
	DepositCents  int64   `json:"deposit_cents"`
}

func (h *LeaseHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req createLeaseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease := &domain.Lease{
		LandlordID:    actorID(r),
		TenantID:      req.TenantID,
		PropertyLabel: req.PropertyLabel,
		ContractStart: req.ContractStart,
		ContractEnd:   req.ContractEnd,
		RentCents:     req.RentCents,
		DepositCents:  req.DepositCents,
	}
	if err := h.leaseSvc.CreateLease(r.Context(), lease); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, lease)
}

func (h *LeaseHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	lease, err := h.leaseSvc.GetLease(r.Context(), actorID(r), leaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	leases, total, err := h.leaseSvc.ListLeases(r.Context(), actorID(r), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"leases": leases, "total": total})
}

// GetLeaseStatus projects the lifecycle phase. "on" overrides the viewing
// date (yyyy-mm-dd); it defaults to today.
func (h *LeaseHandler) GetLeaseStatus(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	now, err := viewingTime(r)
	if err != nil {
		respondError(w, err)
		return
	}

	projection, err := h.leaseSvc.ProjectStatus(r.Context(), actorID(r), leaseID, now)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projection)
}

type tenantResponseRequest struct {
	Response domain.TenantResponse `json:"response"`
}

func (h *LeaseHandler) RecordTenantResponse(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req tenantResponseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, err := h.leaseSvc.RecordTenantResponse(r.Context(), actorID(r), leaseID, req.Response)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lease)
}

type occupancyRequest struct {
	Status   domain.LeaseStatus `json:"status"`
	TenantID string             `json:"tenant_id"`
}

func (h *LeaseHandler) SetOccupancy(w http.ResponseWriter, r *http.Request) {
	leaseID := mux.Vars(r)["id"]
	var req occupancyRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, errors.New("invalid request body"))
		return
	}

	lease, err := h.leaseSvc.SetOccupancy(r.Context(), actorID(r), leaseID, req.Status, req.TenantID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actorID(r), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notes, "total": total})
}

func (h *LeaseHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if err := h.noteSvc.MarkAsRead(r.Context(), actorID(r), noteID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"read": true})
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

// viewingTime resolves the optional "on" query parameter into the viewing
// context's clock.
func viewingTime(r *http.Request) (time.Time, error) {
	on := r.URL.Query().Get("on")
	if on == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", on)
	if err != nil {
		return time.Time{}, errors.New("invalid 'on' date, expected yyyy-mm-dd")
	}
	return t, nil
}
