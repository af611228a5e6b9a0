package mockapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/users"
)

// Customers are derived from bookings: anyone with an appointment at the shop.
func (s *Server) customers(shopID string) map[string]*apiclient.Customer {
	out := make(map[string]*apiclient.Customer)
	for _, a := range s.data.appointments {
		if a.BarbershopID != shopID {
			continue
		}
		cu, ok := out[a.ClientID]
		if !ok {
			account, err := s.accounts.GetByID(a.ClientID)
			if err != nil {
				continue
			}
			cu = &apiclient.Customer{
				ID:    account.ID,
				Name:  account.Name,
				Email: account.Email,
				Phone: account.Phone,
				Notes: s.data.notes[shopID+"/"+account.ID],
			}
			out[a.ClientID] = cu
		}
		cu.TotalAppointments++
		if a.StatusID == apiclient.StatusCompleted && a.Service != nil {
			cu.TotalSpent += a.Service.Price
		}
		if cu.CreatedAt == "" || a.CreatedAt < cu.CreatedAt {
			cu.CreatedAt = a.CreatedAt
		}
	}
	return out
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	list := make([]apiclient.Customer, 0)
	for _, cu := range s.customers(r.PathValue("id")) {
		if search != "" && !strings.Contains(strings.ToLower(cu.Name), search) &&
			!strings.Contains(strings.ToLower(cu.Email), search) {
			continue
		}
		list = append(list, *cu)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	writeData(w, http.StatusOK, list)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	cu, ok := s.customers(r.PathValue("id"))[r.PathValue("cid")]
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found.")
		return
	}
	writeData(w, http.StatusOK, cu)
}

func (s *Server) customerHistory(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	shopID, clientID := r.PathValue("id"), r.PathValue("cid")
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	list := filterSorted(s.data.appointments, func(a apiclient.Appointment) bool {
		return a.BarbershopID == shopID && a.ClientID == clientID
	})
	sortByStart(list)
	history := make([]apiclient.CustomerHistoryEntry, 0, len(list))
	for _, a := range list {
		entry := apiclient.CustomerHistoryEntry{ID: a.ID, StartTime: a.StartTime, StatusID: a.StatusID}
		if a.Service != nil {
			entry.ServiceName, entry.ServicePrice = a.Service.Name, a.Service.Price
		}
		history = append(history, entry)
	}
	writeData(w, http.StatusOK, history)
}

func (s *Server) updateCustomerNotes(w http.ResponseWriter, r *http.Request, _ *users.Account) {
	var in struct {
		Notes string `json:"notes"`
	}
	if !decode(w, r, &in) {
		return
	}
	shopID, clientID := r.PathValue("id"), r.PathValue("cid")
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	cu, ok := s.customers(shopID)[clientID]
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found.")
		return
	}
	s.data.notes[shopID+"/"+clientID] = in.Notes
	cu.Notes = in.Notes
	writeData(w, http.StatusOK, cu)
}

func (s *Server) listFavorites(w http.ResponseWriter, _ *http.Request, account *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	favs := s.data.favorites[account.ID]
	writeData(w, http.StatusOK, filterSorted(s.data.shops, func(b apiclient.Barbershop) bool {
		return favs[b.ID]
	}))
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request, account *users.Account) {
	var in struct {
		BarbershopID string `json:"barbershop_id"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if _, ok := s.data.shops[in.BarbershopID]; !ok {
		writeValidation(w, "barbershop_id", "The selected barbershop is invalid.")
		return
	}
	if s.data.favorites[account.ID] == nil {
		s.data.favorites[account.ID] = make(map[string]bool)
	}
	s.data.favorites[account.ID][in.BarbershopID] = true
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Added to favorites."})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request, account *users.Account) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	favs := s.data.favorites[account.ID]
	if !favs[r.PathValue("id")] {
		writeError(w, http.StatusNotFound, "Favorite not found.")
		return
	}
	delete(favs, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkFavorite(w http.ResponseWriter, r *http.Request, account *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": s.data.favorites[account.ID][r.PathValue("id")]})
}

func (s *Server) getProfile(w http.ResponseWriter, _ *http.Request, account *users.Account) {
	writeData(w, http.StatusOK, account.Profile)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, account *users.Account) {
	var in apiclient.ProfileUpdate
	if !decode(w, r, &in) {
		return
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			writeValidation(w, "name", "The name field is required.")
			return
		}
		account.Name = *in.Name
	}
	if in.Email != nil && !strings.EqualFold(*in.Email, account.Email) {
		if !strings.Contains(*in.Email, "@") {
			writeValidation(w, "email", "The email must be a valid email address.")
			return
		}
		account.Email = *in.Email
	}
	if in.Phone != nil {
		account.Phone = *in.Phone
	}
	err := s.accounts.Upsert(account)
	if errors.Is(err, errors.ErrEmailTaken) {
		writeValidation(w, "email", emailTaken)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, account.Profile)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request, account *users.Account) {
	var in apiclient.PasswordChange
	if !decode(w, r, &in) {
		return
	}
	if !users.CheckPasswordHash(in.CurrentPassword, account.PasswordHash) {
		writeValidation(w, "current_password", "The current password is incorrect.")
		return
	}
	if in.NewPassword != in.NewPasswordConfirmation {
		writeValidation(w, "new_password", "The new password confirmation does not match.")
		return
	}
	if err := users.ValidatePasswordStrength(in.NewPassword); err != nil {
		writeValidation(w, "new_password", err.Error())
		return
	}
	hash, err := users.HashPassword(in.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	account.PasswordHash = hash
	if err := s.accounts.Upsert(account); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated."})
}

func (s *Server) profileStats(w http.ResponseWriter, _ *http.Request, account *users.Account) {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	stats := apiclient.ProfileStats{FavoriteCount: len(s.data.favorites[account.ID])}
	for _, a := range s.data.appointments {
		if a.ClientID != account.ID {
			continue
		}
		stats.TotalAppointments++
		if a.StatusID == apiclient.StatusCompleted && a.Service != nil {
			stats.TotalSpent += a.Service.Price
		}
	}
	writeData(w, http.StatusOK, stats)
}
