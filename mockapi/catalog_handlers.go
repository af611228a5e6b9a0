package mockapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/users"
)

func (s *Server) listServices(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID := r.PathValue("id")
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	writeData(w, http.StatusOK, filterSorted(s.data.services, func(svc apiclient.Service) bool {
		return svc.BarbershopID == shopID
	}))
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	svc, ok := s.data.services[r.PathValue("sid")]
	if !ok || svc.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Service not found.")
		return
	}
	writeData(w, http.StatusOK, svc)
}

func validService(w http.ResponseWriter, in apiclient.ServiceInput) bool {
	switch {
	case strings.TrimSpace(in.Name) == "":
		writeValidation(w, "name", "The name field is required.")
		return false
	case in.Price < 0:
		writeValidation(w, "price", "The price must be at least 0.")
		return false
	case in.DurationMinutes <= 0:
		writeValidation(w, "duration_minutes", "The duration must be at least 1 minute.")
		return false
	}
	return true
}

func (s *Server) createService(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.ServiceInput
	if !decode(w, r, &in) || !validService(w, in) {
		return
	}
	now := s.now().UTC().Format(timestampLayout)
	svc := apiclient.Service{
		ID:              uuid.New().String(),
		BarbershopID:    r.PathValue("id"),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		IsActive:        in.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.data.mu.Lock()
	s.data.services[svc.ID] = svc
	s.data.mu.Unlock()
	writeData(w, http.StatusCreated, svc)
}

func (s *Server) updateService(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.ServiceInput
	if !decode(w, r, &in) || !validService(w, in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	svc, ok := s.data.services[r.PathValue("sid")]
	if !ok || svc.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Service not found.")
		return
	}
	svc.Name, svc.Description, svc.Price = in.Name, in.Description, in.Price
	svc.DurationMinutes, svc.IsActive = in.DurationMinutes, in.IsActive
	svc.UpdatedAt = s.now().UTC().Format(timestampLayout)
	s.data.services[svc.ID] = svc
	writeData(w, http.StatusOK, svc)
}

func (s *Server) deleteService(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	svc, ok := s.data.services[r.PathValue("sid")]
	if !ok || svc.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Service not found.")
		return
	}
	delete(s.data.services, svc.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBarbers(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID := r.PathValue("id")
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	writeData(w, http.StatusOK, filterSorted(s.data.barbers, func(b apiclient.Barber) bool {
		return b.BarbershopID == shopID
	}))
}

func (s *Server) createBarber(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.BarberInput
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeValidation(w, "name", "The name field is required.")
		return
	}
	now := s.now().UTC().Format(timestampLayout)
	b := apiclient.Barber{
		ID:              uuid.New().String(),
		BarbershopID:    r.PathValue("id"),
		Name:            in.Name,
		Specialties:     in.Specialties,
		ProfileImageURL: in.ProfileImageURL,
		IsActive:        in.IsActive == nil || *in.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.data.mu.Lock()
	b.Order = len(filterSorted(s.data.barbers, func(x apiclient.Barber) bool { return x.BarbershopID == b.BarbershopID }))
	s.data.barbers[b.ID] = b
	s.data.mu.Unlock()
	writeData(w, http.StatusCreated, b)
}

func (s *Server) updateBarber(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.BarberInput
	if !decode(w, r, &in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	b, ok := s.data.barbers[r.PathValue("bid")]
	if !ok || b.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Barber not found.")
		return
	}
	if in.Name != "" {
		b.Name = in.Name
	}
	if in.Specialties != nil {
		b.Specialties = in.Specialties
	}
	if in.ProfileImageURL != nil {
		b.ProfileImageURL = in.ProfileImageURL
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	b.UpdatedAt = s.now().UTC().Format(timestampLayout)
	s.data.barbers[b.ID] = b
	writeData(w, http.StatusOK, b)
}

func (s *Server) deleteBarber(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	b, ok := s.data.barbers[r.PathValue("bid")]
	if !ok || b.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Barber not found.")
		return
	}
	delete(s.data.barbers, b.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHours(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID := r.PathValue("id")
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	hours := filterSorted(s.data.hours, func(h apiclient.WorkingHour) bool {
		return h.BarbershopID == shopID
	})
	sortHours(hours)
	writeData(w, http.StatusOK, hours)
}

func validHour(w http.ResponseWriter, in apiclient.WorkingHourInput) bool {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		writeValidation(w, "day_of_week", "The day of week must be between 0 and 6.")
		return false
	}
	if in.IsActive && in.StartTime >= in.EndTime {
		writeValidation(w, "end_time", "The end time must be after the start time.")
		return false
	}
	return true
}

func (s *Server) createHour(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.WorkingHourInput
	if !decode(w, r, &in) || !validHour(w, in) {
		return
	}
	wh := apiclient.WorkingHour{
		ID:           uuid.New().String(),
		BarbershopID: r.PathValue("id"),
		DayOfWeek:    in.DayOfWeek,
		IsActive:     in.IsActive,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
	}
	s.data.mu.Lock()
	s.data.hours[wh.ID] = wh
	s.data.mu.Unlock()
	writeData(w, http.StatusCreated, wh)
}

func (s *Server) updateHour(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in apiclient.WorkingHourInput
	if !decode(w, r, &in) || !validHour(w, in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	wh, ok := s.data.hours[r.PathValue("hid")]
	if !ok || wh.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Business hour not found.")
		return
	}
	wh.DayOfWeek, wh.IsActive, wh.StartTime, wh.EndTime = in.DayOfWeek, in.IsActive, in.StartTime, in.EndTime
	s.data.hours[wh.ID] = wh
	writeData(w, http.StatusOK, wh)
}

func (s *Server) deleteHour(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	wh, ok := s.data.hours[r.PathValue("hid")]
	if !ok || wh.BarbershopID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "Business hour not found.")
		return
	}
	delete(s.data.hours, wh.ID)
	w.WriteHeader(http.StatusNoContent)
}
