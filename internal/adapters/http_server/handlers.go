package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotelchain/internal/app"
	"hotelchain/internal/domain"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	Search   *app.SearchService
	Bookings *app.BookingService
	// WriteLimit throttles the POST routes; nil disables throttling.
	WriteLimit *rate.Limiter
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/hotels", h.listHotels)
	s.mux.Get("/rooms/available", h.availableRooms)
	s.mux.Get("/reservations", h.listReservations)
	s.mux.Group(func(g chi.Router) {
		if h.WriteLimit != nil {
			g.Use(Throttle(h.WriteLimit))
		}
		g.Post("/reservations", h.createReservation)
		g.Post("/rentals", h.createRental)
		g.Post("/reservations/convert", h.convertReservation)
	})
}

// ---- wire types ----

type errBody struct {
	Error string `json:"error"`
}

type hotelJSON struct {
	ID        int64   `json:"id"`
	Chain     string  `json:"hotelChain"`
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Stars     *int    `json:"stars,omitempty"`
	Zone      *string `json:"zone,omitempty"`
	RoomCount *int    `json:"roomCount,omitempty"`
}

// roomJSON carries the room enriched with hotel fields. The booking
// endpoints identify a room by the roomNumber value echoed here.
type roomJSON struct {
	RoomNumber    int64    `json:"roomNumber"`
	HotelID       int64    `json:"hotelId"`
	Price         float64  `json:"price"`
	Capacity      int      `json:"capacity"`
	View          string   `json:"view"`
	Extensible    bool     `json:"extensible"`
	Area          *float64 `json:"area,omitempty"`
	Damaged       bool     `json:"damaged"`
	HotelAddress  *string  `json:"hotelAddress,omitempty"`
	HotelCategory *int     `json:"hotelCategory,omitempty"`
	Location      *string  `json:"location,omitempty"`
	HotelChain    string   `json:"hotelChain"`
}

type reservationJSON struct {
	ID         int64  `json:"id"`
	ClientID   string `json:"clientId"`
	RoomNumber int64  `json:"roomNumber"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}

type paymentJSON struct {
	ID       int64   `json:"id"`
	Amount   float64 `json:"amount"`
	IssuedAt string  `json:"issuedAt"`
}

type rentalJSON struct {
	ID         int64       `json:"id"`
	ClientID   string      `json:"clientId"`
	EmployeeID string      `json:"employeeId"`
	RoomNumber int64       `json:"roomNumber"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Payment    paymentJSON `json:"payment"`
}

func toHotelJSON(h domain.HotelView) hotelJSON {
	return hotelJSON{
		ID: h.ID, Chain: h.ChainName, Name: h.Name, Address: h.Address,
		Stars: h.Stars, Zone: h.Zone, RoomCount: h.RoomCount,
	}
}

func toRoomJSON(r domain.RoomView) roomJSON {
	return roomJSON{
		RoomNumber: r.ID, HotelID: r.HotelID, Price: r.Price, Capacity: r.Capacity,
		View: string(r.View), Extensible: r.Extensible, Area: r.Area, Damaged: r.Damaged,
		HotelAddress: r.HotelAddress, HotelCategory: r.HotelStars, Location: r.Zone,
		HotelChain: r.ChainName,
	}
}

func toReservationJSON(r domain.Reservation) reservationJSON {
	return reservationJSON{
		ID: r.ID, ClientID: r.ClientID, RoomNumber: r.RoomID,
		StartDate: r.Start.Format(dateLayout), EndDate: r.End.Format(dateLayout),
		Status: string(r.Status),
	}
}

func toRentalJSON(r domain.Rental) rentalJSON {
	return rentalJSON{
		ID: r.ID, ClientID: r.ClientID, EmployeeID: r.EmployeeID, RoomNumber: r.RoomID,
		StartDate: r.Start.Format(dateLayout), EndDate: r.End.Format(dateLayout),
		Payment: paymentJSON{
			ID: r.Payment.ID, Amount: r.Payment.Amount,
			IssuedAt: r.Payment.IssuedAt.Format(time.RFC3339),
		},
	}
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errBody{Error: msg})
}

// writeDomainError maps the error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a store failure: logged, generic 500 body.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
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

func writeListWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write list body")
	}
}

// ---- query parsing ----

// parseDate leaves the zero time for an absent value (the service reports
// the missing field) and rejects a malformed one.
func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an ISO-8601 date", domain.ErrInvalidDateRange, name)
	}
	return t, nil
}

func parseSearchQuery(r *http.Request) (domain.SearchQuery, error) {
	qs := r.URL.Query()

	start, err := parseDate("startDate", qs.Get("startDate"))
	if err != nil {
		return domain.SearchQuery{}, err
	}
	end, err := parseDate("endDate", qs.Get("endDate"))
	if err != nil {
		return domain.SearchQuery{}, err
	}
	q := domain.SearchQuery{Start: start, End: end}

	if v := qs.Get("location"); v != "" {
		q.Zone = &v
	}
	if v := qs.Get("view"); v != "" {
		vt := domain.ViewType(v)
		q.View = &vt
	}
	if v := qs.Get("hotelChain"); v != "" {
		q.ChainName = &v
	}
	intFilter := func(name string, dst **int) error {
		v := qs.Get(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidFilter, name)
		}
		*dst = &n
		return nil
	}
	floatFilter := func(name string, dst **float64) error {
		v := qs.Get(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidFilter, name)
		}
		*dst = &f
		return nil
	}
	if err := intFilter("capacity", &q.MinCapacity); err != nil {
		return domain.SearchQuery{}, err
	}
	if err := intFilter("hotelCategory", &q.Stars); err != nil {
		return domain.SearchQuery{}, err
	}
	if err := floatFilter("minArea", &q.MinArea); err != nil {
		return domain.SearchQuery{}, err
	}
	if err := floatFilter("maxArea", &q.MaxArea); err != nil {
		return domain.SearchQuery{}, err
	}
	if err := floatFilter("minPrice", &q.MinPrice); err != nil {
		return domain.SearchQuery{}, err
	}
	if err := floatFilter("maxPrice", &q.MaxPrice); err != nil {
		return domain.SearchQuery{}, err
	}
	return q, nil
}

// ---- handlers ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Search.ListHotels(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]hotelJSON, 0, len(hotels))
	for _, hv := range hotels {
		out = append(out, toHotelJSON(hv))
	}
	writeListWithETag(w, r, out)
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rooms, err := h.Search.AvailableRooms(r.Context(), q)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]roomJSON, 0, len(rooms))
	for _, rv := range rooms {
		out = append(out, toRoomJSON(rv))
	}
	writeListWithETag(w, r, out)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	res, err := h.Bookings.ReservationsByClient(r.Context(), r.URL.Query().Get("clientId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]reservationJSON, 0, len(res))
	for _, rv := range res {
		out = append(out, toReservationJSON(rv))
	}
	writeJSON(w, http.StatusOK, out)
}

type createReservationReq struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	ClientID   string `json:"clientId"`
	RoomNumber int64  `json:"roomNumber"`
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := h.Bookings.CreateReservation(r.Context(), domain.ReservationDraft{
		ClientID: req.ClientID,
		RoomID:   req.RoomNumber,
		Start:    start,
		End:      end,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationJSON(res))
}

type createRentalReq struct {
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	EmployeeID    string  `json:"employeeId"`
	ClientID      string  `json:"clientId"`
	RoomNumber    int64   `json:"roomNumber"`
	PaymentAmount float64 `json:"paymentAmount"`
}

func (h *Handlers) createRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rental, err := h.Bookings.CreateRental(r.Context(), domain.RentalDraft{
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		RoomID:     req.RoomNumber,
		Start:      start,
		End:        end,
		Amount:     req.PaymentAmount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRentalJSON(rental))
}

type convertReservationReq struct {
	ReservationID int64   `json:"reservationId"`
	EmployeeID    string  `json:"employeeId"`
	PaymentAmount float64 `json:"paymentAmount"`
}

func (h *Handlers) convertReservation(w http.ResponseWriter, r *http.Request) {
	var req convertReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rental, err := h.Bookings.ConvertReservation(r.Context(), req.ReservationID, req.EmployeeID, req.PaymentAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRentalJSON(rental))
}
