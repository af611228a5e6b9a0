package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/users"
)

const slotLength = 30 * time.Minute

func (s *Server) listBarbershops(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	writeData(w, http.StatusOK, filterSorted(s.data.shops, func(b apiclient.Barbershop) bool {
		return search == "" || strings.Contains(strings.ToLower(b.Name), search)
	}))
}

func (s *Server) searchBarbershops(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	query := strings.ToLower(r.URL.Query().Get("query"))
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	writeData(w, http.StatusOK, filterSorted(s.data.shops, func(b apiclient.Barbershop) bool {
		return strings.Contains(strings.ToLower(b.Name), query) || strings.Contains(strings.ToLower(b.Biography), query)
	}))
}

func (s *Server) showBarbershop(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	shop, ok := s.data.shops[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Barbershop not found.")
		return
	}
	writeData(w, http.StatusOK, shop)
}

func (s *Server) updateBarbershop(w http.ResponseWriter, r *http.Request, account *users.Account) {
	var in apiclient.UpdateBarbershop
	if !decode(w, r, &in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	shop := s.data.shops[r.PathValue("id")]
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			writeValidation(w, "name", "The name field is required.")
			return
		}
		shop.Name = *in.Name
		account.Organization.Name = *in.Name
		if err := s.accounts.Upsert(account); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if in.CompanyCode != nil {
		shop.CompanyCode = *in.CompanyCode
	}
	if in.Biography != nil {
		shop.Biography = *in.Biography
	}
	if in.Phone != nil {
		shop.Phone = *in.Phone
	}
	if in.RequiresPrepayment != nil {
		shop.RequiresPrepayment = *in.RequiresPrepayment
	}
	if in.Address != nil {
		shop.Address = in.Address
	}
	s.data.shops[shop.ID] = shop
	writeData(w, http.StatusOK, shop)
}

// availableSlots splits the day's opening window into fixed slots and marks
// those overlapping the barber's non-cancelled appointments as taken.
func (s *Server) availableSlots(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID := r.PathValue("id")
	barberID := r.URL.Query().Get("barber_id")
	date, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("date"), time.UTC)
	if err != nil {
		writeValidation(w, "date", "The date must be in YYYY-MM-DD format.")
		return
	}

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	hours := filterSorted(s.data.hours, func(h apiclient.WorkingHour) bool {
		return h.BarbershopID == shopID && h.DayOfWeek == int(date.Weekday()) && h.IsActive
	})
	booked := filterSorted(s.data.appointments, func(a apiclient.Appointment) bool {
		return a.BarbershopID == shopID && a.BarberID == barberID && a.StatusID != apiclient.StatusCancelled
	})

	slots := make([]apiclient.Slot, 0)
	for _, h := range hours {
		open, errOpen := clockOn(date, h.StartTime)
		closing, errClose := clockOn(date, h.EndTime)
		if errOpen != nil || errClose != nil {
			continue
		}
		for start := open; !start.Add(slotLength).After(closing); start = start.Add(slotLength) {
			end := start.Add(slotLength)
			slots = append(slots, apiclient.Slot{
				StartTime: start.Format(time.RFC3339),
				EndTime:   end.Format(time.RFC3339),
				Available: !overlapsAny(start, end, booked),
			})
		}
	}
	writeData(w, http.StatusOK, slots)
}

func clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(time.TimeOnly, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
}

func overlapsAny(start, end time.Time, appointments []apiclient.Appointment) bool {
	for _, a := range appointments {
		aStart, err1 := time.Parse(time.RFC3339, a.StartTime)
		aEnd, err2 := time.Parse(time.RFC3339, a.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if start.Before(aEnd) && aStart.Before(end) {
			return true
		}
	}
	return false
}
