package model

import (
	"errors"
	"testing"
	"time"
)

func TestJourneyValidate(t *testing.T) {
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		arrival time.Time
		wantErr bool
	}{
		{name: "arrival after departure", arrival: dep.Add(2 * time.Hour)},
		{name: "arrival one second later", arrival: dep.Add(time.Second)},
		{name: "arrival equals departure", arrival: dep, wantErr: true},
		{name: "arrival before departure", arrival: dep.Add(-time.Hour), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := Journey{DepartureTime: dep, ArrivalTime: tc.arrival}
			err := j.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrArrivalBeforeDeparture) {
					t.Fatalf("Validate() = %v, want ErrArrivalBeforeDeparture", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestJourneyDuration(t *testing.T) {
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	j := Journey{DepartureTime: dep, ArrivalTime: dep.Add(3*time.Hour + 30*time.Minute)}
	if got := j.Duration(); got != 3*time.Hour+30*time.Minute {
		t.Fatalf("Duration() = %s, want 3h30m", got)
	}
}

func TestTrainCapacity(t *testing.T) {
	tests := []struct {
		wagons   uint32
		capacity uint32
		want     uint32
	}{
		{10, 50, 500},
		{1, 1, 1},
		{3, 4, 12},
	}
	for _, tc := range tests {
		tr := Train{WagonCount: tc.wagons, WagonCapacity: tc.capacity}
		if got := tr.Capacity(); got != tc.want {
			t.Errorf("Capacity(%d, %d) = %d, want %d", tc.wagons, tc.capacity, got, tc.want)
		}
	}
}
