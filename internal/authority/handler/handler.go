package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"healthledger/internal/ledger"
	"healthledger/internal/platform/middleware"
	"healthledger/internal/transport/http/shared"
	"healthledger/pkg/domain"
	dErrors "healthledger/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/authority_mocks.go -package=mocks Service

// Service defines the authority operations the handler delegates to.
type Service interface {
	RegisterDoctor(ctx context.Context, caller, doctor domain.PersonID) error
	RegisterPatient(ctx context.Context, caller, patient domain.PersonID) error
	Transfer(ctx context.Context, caller, newAdmin domain.PersonID) error
	Grant(ctx context.Context, caller, doctor domain.PersonID) error
	Revoke(ctx context.Context, caller, doctor domain.PersonID) error
	AddRecord(ctx context.Context, caller, patient domain.PersonID, fp domain.Fingerprint) (int64, error)
	RoleOf(ctx context.Context, id domain.PersonID) (domain.Role, bool)
	IsGranted(ctx context.Context, patient, doctor domain.PersonID) (bool, error)
	Record(ctx context.Context, id int64) (ledger.Record, error)
	RecordsForPatient(ctx context.Context, caller, patient domain.PersonID) ([]ledger.Record, error)
}

// Handler exposes the authority over HTTP. It stays thin: identity comes
// from the auth middleware, parsing happens at the boundary, and every
// domain decision is the service's.
type Handler struct {
	logger    *slog.Logger
	authority Service
	validator middleware.TokenValidator
}

// New creates the authority Handler.
func New(authority Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		authority: authority,
		validator: validator,
	}
}

// Register registers the authority routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.RequireAuth(h.validator, h.logger))

	router.Post("/registry/doctors", h.handleRegisterDoctor)
	router.Post("/registry/patients", h.handleRegisterPatient)
	router.Get("/registry/persons/{personID}", h.handleRoleOf)
	router.Post("/admin/transfer", h.handleTransfer)
	router.Post("/consent/grants", h.handleGrant)
	router.Post("/consent/revocations", h.handleRevoke)
	router.Get("/consent/grants/{doctorID}", h.handleIsGranted)
	router.Post("/records", h.handleAddRecord)
	router.Get("/records/{recordID}", h.handleGetRecord)
	router.Get("/records", h.handleListRecords)

	r.Mount("/", router)
}

// caller extracts the authenticated identity the middleware stored.
func (h *Handler) caller(ctx context.Context, w http.ResponseWriter) (domain.PersonID, bool) {
	personID := middleware.GetPersonID(ctx)
	if personID == "" {
		// Should never happen behind RequireAuth.
		h.logger.ErrorContext(ctx, "person id missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}
	return domain.PersonID(personID), true
}

func (h *Handler) handleRegisterDoctor(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, h.authority.RegisterDoctor)
}

func (h *Handler) handleRegisterPatient(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, h.authority.RegisterPatient)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request,
	register func(ctx context.Context, caller, id domain.PersonID) error) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	id, err := domain.ParsePersonID(req.PersonID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := register(ctx, caller, id); err != nil {
		h.warnDenied(ctx, "register denied", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	newAdmin, err := domain.ParsePersonID(req.NewAdmin)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.authority.Transfer(ctx, caller, newAdmin); err != nil {
		h.warnDenied(ctx, "transfer denied", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	h.handleConsent(w, r, h.authority.Grant, "grant denied")
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	h.handleConsent(w, r, h.authority.Revoke, "revoke denied")
}

func (h *Handler) handleConsent(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, caller, doctor domain.PersonID) error, deniedMsg string) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	var req ConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	doctor, err := domain.ParsePersonID(req.DoctorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := apply(ctx, caller, doctor); err != nil {
		h.warnDenied(ctx, deniedMsg, err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleIsGranted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	doctor, err := domain.ParsePersonID(chi.URLParam(r, "doctorID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	// Patients read their own row of the matrix.
	granted, err := h.authority.IsGranted(ctx, caller, doctor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, GrantResponse{
		PatientID: caller.String(),
		DoctorID:  doctor.String(),
		Granted:   granted,
	})
}

func (h *Handler) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	var req AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patient, err := domain.ParsePersonID(req.PatientID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	fp, err := domain.ParseFingerprint(req.Fingerprint)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	id, err := h.authority.AddRecord(ctx, caller, patient, fp)
	if err != nil {
		h.warnDenied(ctx, "record write denied", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, AddRecordResponse{RecordID: id})
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.caller(ctx, w); !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "record id must be an integer"))
		return
	}

	rec, err := h.authority.Record(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(ctx, w)
	if !ok {
		return
	}

	patient, err := domain.ParsePersonID(r.URL.Query().Get("patient_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	records, err := h.authority.RecordsForPatient(ctx, caller, patient)
	if err != nil {
		h.warnDenied(ctx, "record list denied", err)
		shared.WriteError(w, err)
		return
	}
	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRoleOf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.caller(ctx, w); !ok {
		return
	}

	id, err := domain.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	role, exists := h.authority.RoleOf(ctx, id)
	if !exists {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not registered"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, RoleResponse{PersonID: id.String(), Role: role.String()})
}

// warnDenied logs rejected transitions; they are expected outcomes, not
// server errors.
func (h *Handler) warnDenied(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
