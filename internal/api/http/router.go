package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface. All routes expect the gateway-injected
// X-User-ID header identifying the acting landlord or tenant.
func NewRouter(leases *LeaseHandler, terminations *TerminationHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/leases", leases.CreateLease).Methods(http.MethodPost)
	api.HandleFunc("/leases", leases.ListLeases).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}", leases.GetLease).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}/status", leases.GetLeaseStatus).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}/response", leases.RecordTenantResponse).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/occupancy", leases.SetOccupancy).Methods(http.MethodPut)

	api.HandleFunc("/leases/{id}/termination/request", terminations.RequestTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/initiate", terminations.InitiateTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/confirm", terminations.ConfirmTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/reject", terminations.RejectTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/cancel", terminations.CancelTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/complete", terminations.CompleteTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/settlement", terminations.GetSettlement).Methods(http.MethodGet)

	api.HandleFunc("/leases/{id}/termination/deductions", terminations.AddDeduction).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/termination/deductions/{index}", terminations.UpdateDeduction).Methods(http.MethodPut)
	api.HandleFunc("/leases/{id}/termination/deductions/{index}", terminations.RemoveDeduction).Methods(http.MethodDelete)
	api.HandleFunc("/leases/{id}/termination/return-override", terminations.SetReturnOverride).Methods(http.MethodPut)
	api.HandleFunc("/leases/{id}/termination/return-override", terminations.ClearReturnOverride).Methods(http.MethodDelete)

	api.HandleFunc("/notifications", leases.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", leases.MarkNotificationRead).Methods(http.MethodPost)

	return r
}
