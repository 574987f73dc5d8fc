package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMandiLocation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Azadpur (F&V) APMC Mandi", "Azadpur"},
		{"Lasalgaon Market", "Lasalgaon"},
		{"Khanna Mandi", "Khanna"},
		{"Binny Mill (F&V), Bangalore", "Binny Mill, Bangalore"},
		{"Pune APMC Yard", "Pune"},
		{"Nashik", "Nashik"},
		{"  Indore  Mandi  ", "Indore"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanMandiLocation(tc.in), "in=%q", tc.in)
	}
}
