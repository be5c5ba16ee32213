package booking

import (
	"fmt"
	"testing"

	"github.com/iliyamo/train-station-booking/internal/model"
)

func testTrain(wagons, capacity uint32) model.Train {
	return model.Train{ID: 1, Name: "T1", WagonCount: wagons, WagonCapacity: capacity}
}

func TestValidateRange(t *testing.T) {
	ledger := NewLedger(testTrain(10, 50), nil)

	tests := []struct {
		name    string
		wagon   uint32
		seat    uint32
		field   string
		message string
	}{
		{name: "ok min", wagon: 1, seat: 1},
		{name: "ok max", wagon: 10, seat: 50},
		{name: "wagon zero", wagon: 0, seat: 1,
			field: "wagon_number", message: "wagon number must be in range (1,10)"},
		{name: "wagon too high", wagon: 11, seat: 1,
			field: "wagon_number", message: "wagon number must be in range (1,10)"},
		{name: "seat zero", wagon: 1, seat: 0,
			field: "seat_number", message: "seat number must be in range (1,50)"},
		{name: "seat too high", wagon: 1, seat: 51,
			field: "seat_number", message: "seat number must be in range (1,50)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verr := ledger.Validate(tc.wagon, tc.seat)
			if tc.field == "" {
				if verr != nil {
					t.Fatalf("Validate(%d, %d) = %v, want nil", tc.wagon, tc.seat, verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("Validate(%d, %d) = nil, want error on %s", tc.wagon, tc.seat, tc.field)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
			if verr.Message != tc.message {
				t.Errorf("message = %q, want %q", verr.Message, tc.message)
			}
		})
	}
}

func TestValidateWagonCheckedBeforeSeat(t *testing.T) {
	ledger := NewLedger(testTrain(10, 50), nil)
	verr := ledger.Validate(11, 51)
	if verr == nil || verr.Field != "wagon_number" {
		t.Fatalf("Validate(11, 51) = %v, want wagon_number error", verr)
	}
}

func TestValidateSoldSeat(t *testing.T) {
	sold := []SeatKey{{Wagon: 2, Seat: 7}}
	ledger := NewLedger(testTrain(10, 50), sold)

	verr := ledger.Validate(2, 7)
	if verr == nil {
		t.Fatal("Validate(2, 7) = nil, want seat already sold")
	}
	if verr.Field != "seat_number" || verr.Message != "seat already sold" {
		t.Fatalf("got %q on %q, want %q on seat_number", verr.Message, verr.Field, "seat already sold")
	}
	// Same seat number in a different wagon stays free.
	if verr := ledger.Validate(3, 7); verr != nil {
		t.Fatalf("Validate(3, 7) = %v, want nil", verr)
	}
}

func TestValidateDoesNotClaim(t *testing.T) {
	ledger := NewLedger(testTrain(10, 50), nil)
	for i := 0; i < 3; i++ {
		if verr := ledger.Validate(1, 1); verr != nil {
			t.Fatalf("Validate attempt %d = %v, want nil", i, verr)
		}
	}
	if got := ledger.SoldCount(); got != 0 {
		t.Fatalf("SoldCount() = %d after Validate only, want 0", got)
	}
}

func TestReserveRejectsDuplicateInBatch(t *testing.T) {
	ledger := NewLedger(testTrain(10, 50), nil)

	if verr := ledger.Reserve(4, 12); verr != nil {
		t.Fatalf("first Reserve(4, 12) = %v, want nil", verr)
	}
	verr := ledger.Reserve(4, 12)
	if verr == nil {
		t.Fatal("second Reserve(4, 12) = nil, want seat already sold")
	}
	if verr.Message != "seat already sold" {
		t.Fatalf("message = %q, want %q", verr.Message, "seat already sold")
	}
	if got := ledger.SoldCount(); got != 1 {
		t.Fatalf("SoldCount() = %d, want 1", got)
	}
}

func TestReserveRejectedLineLeavesNoTrace(t *testing.T) {
	ledger := NewLedger(testTrain(10, 50), nil)
	if verr := ledger.Reserve(11, 1); verr == nil {
		t.Fatal("Reserve(11, 1) = nil, want range error")
	}
	if got := ledger.SoldCount(); got != 0 {
		t.Fatalf("SoldCount() = %d after rejected line, want 0", got)
	}
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		train model.Train
		sold  int
		want  int
	}{
		{testTrain(10, 50), 0, 500},
		{testTrain(10, 50), 499, 1},
		{testTrain(10, 50), 500, 0},
		{testTrain(10, 50), 501, 0}, // never negative
		{testTrain(1, 1), 0, 1},
	}
	for _, tc := range tests {
		name := fmt.Sprintf("%dx%d-%d", tc.train.WagonCount, tc.train.WagonCapacity, tc.sold)
		t.Run(name, func(t *testing.T) {
			if got := Available(tc.train, tc.sold); got != tc.want {
				t.Fatalf("Available = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAvailablePlusSoldEqualsCapacity(t *testing.T) {
	train := testTrain(3, 4)
	ledger := NewLedger(train, []SeatKey{{1, 1}, {2, 3}})

	for _, k := range []SeatKey{{1, 2}, {3, 4}} {
		if verr := ledger.Reserve(k.Wagon, k.Seat); verr != nil {
			t.Fatalf("Reserve(%d, %d) = %v, want nil", k.Wagon, k.Seat, verr)
		}
	}
	sold := ledger.SoldCount()
	if got := Available(train, sold) + sold; got != int(train.Capacity()) {
		t.Fatalf("available+sold = %d, want capacity %d", got, train.Capacity())
	}
}
