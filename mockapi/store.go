package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
)

const timestampLayout = time.RFC3339

// store holds the fake API's resources. Callers get copies, never pointers into the maps.
type store struct {
	mu           sync.RWMutex
	shops        map[string]apiclient.Barbershop
	services     map[string]apiclient.Service
	barbers      map[string]apiclient.Barber
	appointments map[string]apiclient.Appointment
	hours        map[string]apiclient.WorkingHour
	notes        map[string]string          // shopID/clientID -> notes
	favorites    map[string]map[string]bool // clientID -> shopID set
}

func newStore() *store {
	return &store{
		shops:        make(map[string]apiclient.Barbershop),
		services:     make(map[string]apiclient.Service),
		barbers:      make(map[string]apiclient.Barber),
		appointments: make(map[string]apiclient.Appointment),
		hours:        make(map[string]apiclient.WorkingHour),
		notes:        make(map[string]string),
		favorites:    make(map[string]map[string]bool),
	}
}

// filterSorted returns the values of m accepted by keep, ordered by key.
func filterSorted[T any](m map[string]T, keep func(T) bool) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		if keep(m[k]) {
			out = append(out, m[k])
		}
	}
	return out
}

// sortHours orders opening windows by weekday, then opening time.
func sortHours(hours []apiclient.WorkingHour) {
	sort.SliceStable(hours, func(i, j int) bool {
		if hours[i].DayOfWeek != hours[j].DayOfWeek {
			return hours[i].DayOfWeek < hours[j].DayOfWeek
		}
		return hours[i].StartTime < hours[j].StartTime
	})
}
