package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRoute(t *testing.T) {
	stations := []string{"A", "B", "C", "D"}
	tests := []struct {
		name     string
		src, dst string
		want     bool
	}{
		{"forward adjacent", "A", "B", true},
		{"forward end to end", "A", "D", true},
		{"forward middle", "B", "D", true},
		{"against direction", "D", "A", false},
		{"same station", "B", "B", false},
		{"unknown source", "X", "C", false},
		{"unknown destination", "A", "X", false},
		{"empty names", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidRoute(stations, tt.src, tt.dst))
		})
	}
}

func TestValidRouteDirection(t *testing.T) {
	stations := []string{"Pune", "Nagpur", "Delhi"}
	for i := 0; i < len(stations); i++ {
		for j := i + 1; j < len(stations); j++ {
			assert.True(t, ValidRoute(stations, stations[i], stations[j]))
			assert.False(t, ValidRoute(stations, stations[j], stations[i]))
		}
	}
}
