package server

import (
	"fmt"
	"strconv"

	"github.com/jrsteele09/go-barber-client/apiclient"
)

// table is a generic list view.
type table struct {
	Heading string
	Columns []string
	Rows    []row
	Empty   string
	Links   []link
}

type row struct {
	Href  string
	Cells []string
}

// detail is a generic record view.
type detail struct {
	Heading string
	Fields  []field
	Tables  []table
	Links   []link
	Empty   string
}

type field struct {
	Label string
	Value string
}

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekday(day int) string {
	if day < 0 || day >= len(weekdays) {
		return strconv.Itoa(day)
	}
	return weekdays[day]
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func rating(avg *float64, count *int) string {
	if avg == nil {
		return "-"
	}
	if count == nil {
		return fmt.Sprintf("%.1f", *avg)
	}
	return fmt.Sprintf("%.1f (%d)", *avg, *count)
}

func formatAddress(a *apiclient.Address) string {
	if a == nil {
		return ""
	}
	s := a.Street + ", " + a.Number
	if a.Complement != "" {
		s += " " + a.Complement
	}
	return fmt.Sprintf("%s - %s, %s/%s %s", s, a.Neighborhood, a.City, a.State, a.ZipCode)
}

func clientName(a apiclient.Appointment) string {
	if a.Client != nil {
		return a.Client.Name
	}
	return a.ClientID
}

func barberName(a apiclient.Appointment) string {
	if a.Barber != nil {
		return a.Barber.Name
	}
	return a.BarberID
}

func serviceName(a apiclient.Appointment) string {
	if a.Service != nil {
		return a.Service.Name
	}
	return a.ServiceID
}
