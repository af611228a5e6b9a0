package server

// ANSI colours for the DEV route log.
const (
	Red   = "\033[31m"
	Green = "\033[32m"
	Blue  = "\033[34m"
	Cyan  = "\033[36m"
	Gray  = "\033[90m"

	ResetColor = "\033[0m"
)

// methodColors covers what the UI registers: page GETs, form POSTs and the
// navigation table listing.
var methodColors = map[string]string{
	"GET":  Green,
	"POST": Blue,
	"PAGE": Cyan,
}
