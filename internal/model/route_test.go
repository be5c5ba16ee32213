package model

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name        string
		source      Station
		destination Station
		want        int
	}{
		{
			name:        "same coordinates",
			source:      Station{Latitude: 50.45, Longitude: 30.52},
			destination: Station{Latitude: 50.45, Longitude: 30.52},
			want:        0,
		},
		{
			name:        "pythagorean triple",
			source:      Station{Latitude: 0, Longitude: 0},
			destination: Station{Latitude: 3, Longitude: 4},
			want:        5,
		},
		{
			name:        "truncated not rounded",
			source:      Station{Latitude: 0, Longitude: 0},
			destination: Station{Latitude: 1, Longitude: 1},
			want:        1, // sqrt(2) ~ 1.414
		},
		{
			name:        "direction does not matter",
			source:      Station{Latitude: 3, Longitude: 4},
			destination: Station{Latitude: 0, Longitude: 0},
			want:        5,
		},
		{
			name:        "negative coordinates",
			source:      Station{Latitude: -3, Longitude: -4},
			destination: Station{Latitude: 0, Longitude: 0},
			want:        5,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Distance(tc.source, tc.destination); got != tc.want {
				t.Fatalf("Distance = %d, want %d", got, tc.want)
			}
		})
	}
}
