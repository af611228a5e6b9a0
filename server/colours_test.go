package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColourMethod(t *testing.T) {
	tests := []struct {
		method string
		colour string
	}{
		{method: "GET", colour: Green},
		{method: "POST", colour: Blue},
		{method: "PAGE", colour: Cyan},
		{method: "", colour: Gray},
		{method: "DELETE", colour: Gray},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := colourMethod(tt.method)
			require.Equal(t, tt.colour+" "+padRight(tt.method, 7)+ResetColor, got)
		})
	}
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
