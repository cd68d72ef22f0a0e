package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/payments-service-go/internal/payment"
)

// PaymentService is the slice of the service layer the handlers need.
type PaymentService interface {
	Create(ctx context.Context, in payment.CreateInput) (*payment.Response, error)
	CreateBatch(ctx context.Context, inputs []payment.CreateInput) []payment.Response
	Get(ctx context.Context, id int64) (*payment.Response, error)
	List(ctx context.Context) ([]payment.Response, error)
	Update(ctx context.Context, id int64, fields payment.UpdateFields) (*payment.Response, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	svc    PaymentService
	logger *log.Logger
}

func NewHandler(svc PaymentService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in payment.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, resp)
}

func (h *Handler) CreateBatchPayments(w http.ResponseWriter, r *http.Request) {
	var inputs []payment.CreateInput
	// A JSON null decodes without error into a nil slice; only a real
	// array is acceptable here.
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil || inputs == nil {
		writeError(w, http.StatusBadRequest, "request body must be an array of payments")
		return
	}

	// Per-item failures are skipped inside the service; the batch itself
	// always succeeds.
	results := h.svc.CreateBatch(r.Context(), inputs)
	writeData(w, http.StatusCreated, results)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}

	writeData(w, http.StatusOK, resp)
}

func (h *Handler) GetAllPayments(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, results)
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	var fields payment.UpdateFields
	// An absent body is an empty partial update, same as {}.
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Update(r.Context(), id, fields)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}

	writeData(w, http.StatusOK, resp)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "payment deleted successfully"})
}

// paymentID parses the path id, answering 400 itself on garbage input.
func paymentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps business-rule failures to 400 with their message
// and everything else to a generic 500, keeping the detail in the log.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if payment.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
