package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus_market/internal/app"
	"campus_market/internal/domain"
	"campus_market/internal/filter"
)

type Handlers struct{ Svc *app.Service }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", h.dashboard)
		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)

		r.Get("/accommodations", h.listAccommodations)
		r.Get("/accommodations/{id}", h.getAccommodation)
		r.Get("/food-providers", h.listFoodProviders)
		r.Get("/food-providers/{id}", h.getFoodProvider)
		r.Get("/food-providers/{id}/menu", h.getMenu)

		r.Get("/bookings", h.listBookings)
		r.Post("/bookings", h.createBooking)
		r.Post("/bookings/{id}/cancel", h.cancelBooking)
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Post("/orders/{id}/cancel", h.cancelOrder)

		r.Get("/notifications", h.listNotifications)
		r.Post("/notifications/{id}/read", h.markRead)
		r.Get("/reviews", h.listReviews)
		r.Post("/reviews", h.createReview)
		r.Get("/chats/{id}/messages", h.listMessages)
		r.Post("/chats/{id}/messages", h.sendMessage)

		r.Post("/recommendations/{kind}", h.recommend)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps façade errors. Backend outages never get here; the
// façade has already degraded them.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Request Cancelled", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeRead serves a GET payload with a weak ETag and honours If-None-Match.
func writeRead(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write body failed")
	}
}

// writeAck answers a write. Simulated acknowledgments get 202 since
// nothing was persisted upstream.
func writeAck(w http.ResponseWriter, v any, simulated bool, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusCreated
	if simulated {
		status = http.StatusAccepted
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write ack failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

/********** reads **********/

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.Dashboard(r.Context())
	writeRead(w, r, d, err)
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.GetProfile(r.Context())
	writeRead(w, r, p, err)
}

func (h *Handlers) listAccommodations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetAccommodations(r.Context(), filter.FromQuery(r.URL.Query()))
	writeRead(w, r, out, err)
}

func (h *Handlers) getAccommodation(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.GetAccommodation(r.Context(), chi.URLParam(r, "id"))
	writeRead(w, r, a, err)
}

func (h *Handlers) listFoodProviders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetFoodProviders(r.Context(), filter.FromQuery(r.URL.Query()))
	writeRead(w, r, out, err)
}

func (h *Handlers) getFoodProvider(w http.ResponseWriter, r *http.Request) {
	f, err := h.Svc.GetFoodProvider(r.Context(), chi.URLParam(r, "id"))
	writeRead(w, r, f, err)
}

func (h *Handlers) getMenu(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetMenu(r.Context(), chi.URLParam(r, "id"))
	writeRead(w, r, out, err)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetBookings(r.Context())
	writeRead(w, r, out, err)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetOrders(r.Context())
	writeRead(w, r, out, err)
}

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetNotifications(r.Context())
	writeRead(w, r, out, err)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetReviews(r.Context(), r.URL.Query().Get("target"))
	writeRead(w, r, out, err)
}

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.GetChatMessages(r.Context(), chi.URLParam(r, "id"))
	writeRead(w, r, out, err)
}

/********** writes **********/

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProfileUpdate
	if !decode(w, r, &upd) {
		return
	}
	p, err := h.Svc.UpdateProfile(r.Context(), upd)
	writeRead(w, r, p, err)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.Svc.CreateBooking(r.Context(), req)
	writeAck(w, b, b.IsSimulated, err)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	writeAck(w, b, b.IsSimulated, err)
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Svc.CreateFoodOrder(r.Context(), req)
	writeAck(w, o, o.IsSimulated, err)
}

func (h *Handlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	writeAck(w, o, o.IsSimulated, err)
}

func (h *Handlers) markRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.MarkNotificationRead(r.Context(), chi.URLParam(r, "id"))
	writeRead(w, r, n, err)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req domain.ReviewRequest
	if !decode(w, r, &req) {
		return
	}
	rv, err := h.Svc.CreateReview(r.Context(), req)
	writeAck(w, rv, rv.IsSimulated, err)
}

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.MessageRequest
	if !decode(w, r, &req) {
		return
	}
	req.ChatID = chi.URLParam(r, "id")
	m, err := h.Svc.SendMessage(r.Context(), req)
	writeAck(w, m, m.IsSimulated, err)
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown recommendation kind")
		return
	}
	var prefs domain.PreferenceVector
	if !decode(w, r, &prefs) {
		return
	}
	switch kind {
	case domain.KindFood:
		out, err := h.Svc.RecommendFoodProviders(r.Context(), prefs)
		writeRead(w, r, out, err)
	default:
		out, err := h.Svc.RecommendAccommodations(r.Context(), prefs)
		writeRead(w, r, out, err)
	}
}
