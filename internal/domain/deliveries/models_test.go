package deliveries

import (
	"errors"
	"testing"
)

func validDelivery() Delivery {
	return Delivery{
		MatchID:     "335982",
		Over:        1,
		BattingTeam: "Kolkata Knight Riders",
		BowlingTeam: "Royal Challengers Bangalore",
		Batter:      "SC Ganguly",
		Bowler:      "P Kumar",
		BatsmanRuns: 0,
		TotalRuns:   1,
	}
}

func TestDeliveryIsWicket(t *testing.T) {
	d := validDelivery()
	if d.IsWicket() {
		t.Fatalf("expected no wicket")
	}
	d.DismissalKind = "run out"
	if !d.IsWicket() {
		t.Fatalf("expected run out to count as a wicket")
	}
}

func TestDeliveryValidate(t *testing.T) {
	if err := validDelivery().Validate(); err != nil {
		t.Fatalf("expected valid delivery, got %v", err)
	}

	same := validDelivery()
	same.BowlingTeam = same.BattingTeam
	if err := same.Validate(); !errors.Is(err, ErrSameTeams) {
		t.Fatalf("expected ErrSameTeams, got %v", err)
	}

	for _, mutate := range []func(*Delivery){
		func(d *Delivery) { d.Batter = "" },
		func(d *Delivery) { d.Over = -1 },
		func(d *Delivery) { d.BatsmanRuns = -1 },
		func(d *Delivery) { d.BatsmanRuns = 4; d.TotalRuns = 1 },
	} {
		d := validDelivery()
		mutate(&d)
		if err := d.Validate(); err == nil {
			t.Fatalf("expected error for %+v", d)
		}
	}
}
