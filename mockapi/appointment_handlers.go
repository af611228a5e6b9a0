package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/users"
)

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID := r.PathValue("id")
	q := r.URL.Query()
	date := q.Get("date")
	barberID := q.Get("barber_id")
	statusID, _ := strconv.Atoi(q.Get("status_id"))

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	list := filterSorted(s.data.appointments, func(a apiclient.Appointment) bool {
		switch {
		case a.BarbershopID != shopID:
			return false
		case barberID != "" && a.BarberID != barberID:
			return false
		case statusID != 0 && a.StatusID != statusID:
			return false
		case date != "" && startDate(a) != date:
			return false
		}
		return true
	})
	sortByStart(list)
	writeData(w, http.StatusOK, list)
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	a, ok := s.data.appointments[r.PathValue("aid")]
	if !ok || a.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	writeData(w, http.StatusOK, a)
}

// createAppointment books a slot. Clients always book for themselves; owners book
// for any client, but only in their own barbershop.
func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request, account *users.Account) {
	shopID := r.PathValue("id")
	var in apiclient.AppointmentInput
	if !decode(w, r, &in) {
		return
	}

	switch account.Role {
	case users.RoleClient:
		in.ClientID = account.ID
	case users.RoleOwner:
		if account.OrganizationID() != shopID {
			writeError(w, http.StatusForbidden, "This action is unauthorized.")
			return
		}
	default:
		writeError(w, http.StatusForbidden, "This action is unauthorized.")
		return
	}

	client, err := s.accounts.GetByID(in.ClientID)
	if err != nil || client.Role != users.RoleClient {
		writeValidation(w, "client_id", "The selected client is invalid.")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	if _, ok := s.data.shops[shopID]; !ok {
		writeError(w, http.StatusNotFound, "Barbershop not found.")
		return
	}
	a, ok := s.buildAppointment(w, shopID, in)
	if !ok {
		return
	}
	now := s.now().UTC().Format(timestampLayout)
	a.ID = uuid.New().String()
	a.ClientID = client.ID
	a.Client = &apiclient.AppointmentClient{ID: client.ID, Name: client.Name, Email: client.Email, Phone: client.Phone}
	a.StatusID = apiclient.StatusPending
	a.CreatedAt, a.UpdatedAt = now, now
	s.data.appointments[a.ID] = a
	writeData(w, http.StatusCreated, a)
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.AppointmentInput
	if !decode(w, r, &in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	current, ok := s.data.appointments[r.PathValue("aid")]
	if !ok || current.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	if in.BarberID == "" {
		in.BarberID = current.BarberID
	}
	if in.ServiceID == "" {
		in.ServiceID = current.ServiceID
	}
	if in.StartTime == "" {
		in.StartTime, in.EndTime = current.StartTime, current.EndTime
	}

	delete(s.data.appointments, current.ID)
	a, ok := s.buildAppointment(w, current.BarbershopID, in)
	if !ok {
		s.data.appointments[current.ID] = current
		return
	}
	a.ID, a.ClientID, a.Client, a.CreatedAt = current.ID, current.ClientID, current.Client, current.CreatedAt
	a.StatusID = current.StatusID
	if validStatus(in.StatusID) {
		a.StatusID = in.StatusID
	}
	a.UpdatedAt = s.now().UTC().Format(timestampLayout)
	s.data.appointments[a.ID] = a
	writeData(w, http.StatusOK, a)
}

func (s *Server) updateAppointmentStatus(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in struct {
		StatusID int `json:"status_id"`
	}
	if !decode(w, r, &in) {
		return
	}
	if !validStatus(in.StatusID) {
		writeValidation(w, "status_id", "The selected status is invalid.")
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	a, ok := s.data.appointments[r.PathValue("aid")]
	if !ok || a.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	a.StatusID = in.StatusID
	a.UpdatedAt = s.now().UTC().Format(timestampLayout)
	s.data.appointments[a.ID] = a
	writeData(w, http.StatusOK, a)
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	a, ok := s.data.appointments[r.PathValue("aid")]
	if !ok || a.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	delete(s.data.appointments, a.ID)
	w.WriteHeader(http.StatusNoContent)
}

// buildAppointment validates barber, service and time window against the shop.
// The caller must hold s.data.mu.
func (s *Server) buildAppointment(w http.ResponseWriter, shopID string, in apiclient.AppointmentInput) (apiclient.Appointment, bool) {
	barber, ok := s.data.barbers[in.BarberID]
	if !ok || barber.BarbershopID != shopID || !barber.IsActive {
		writeValidation(w, "barber_id", "The selected barber is invalid.")
		return apiclient.Appointment{}, false
	}
	svc, ok := s.data.services[in.ServiceID]
	if !ok || svc.BarbershopID != shopID {
		writeValidation(w, "service_id", "The selected service is invalid.")
		return apiclient.Appointment{}, false
	}
	start, err := time.Parse(time.RFC3339, in.StartTime)
	if err != nil {
		writeValidation(w, "start_time", "The start time is not a valid date.")
		return apiclient.Appointment{}, false
	}
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	if in.EndTime != "" {
		if end, err = time.Parse(time.RFC3339, in.EndTime); err != nil || !end.After(start) {
			writeValidation(w, "end_time", "The end time must be after the start time.")
			return apiclient.Appointment{}, false
		}
	}

	taken := filterSorted(s.data.appointments, func(a apiclient.Appointment) bool {
		return a.BarberID == barber.ID && a.StatusID != apiclient.StatusCancelled
	})
	if overlapsAny(start, end, taken) {
		writeValidation(w, "start_time", "The barber is not available at this time.")
		return apiclient.Appointment{}, false
	}

	return apiclient.Appointment{
		BarbershopID: shopID,
		BarberID:     barber.ID,
		ServiceID:    svc.ID,
		StartTime:    start.Format(time.RFC3339),
		EndTime:      end.Format(time.RFC3339),
		Barber:       &apiclient.AppointmentBarber{ID: barber.ID, Name: barber.Name, Specialties: utils.Value(barber.Specialties)},
		Service:      &svc,
	}, true
}

func validStatus(id int) bool {
	return id >= apiclient.StatusPending && id <= apiclient.StatusCancelled
}

func startDate(a apiclient.Appointment) string {
	t, err := time.Parse(time.RFC3339, a.StartTime)
	if err != nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func sortByStart(list []apiclient.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime < list[j].StartTime
	})
}
