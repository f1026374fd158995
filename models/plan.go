package models

import (
	"fmt"
	"time"
)

// Plan describes a time-boxed access plan a visitor can purchase.
// Prices are in KES; providers are billed in minor units (KES x 100).
type Plan struct {
	Name      string        `json:"name"`
	Duration  time.Duration `json:"-"`
	AmountKES int           `json:"amountKes"`
}

var Plans = []Plan{
	{Name: "2 Hour Plan", Duration: 2 * time.Hour, AmountKES: 10},
	{Name: "1 Day Plan", Duration: 24 * time.Hour, AmountKES: 20},
	{Name: "1 Week Plan", Duration: 7 * 24 * time.Hour, AmountKES: 50},
	{Name: "1 Month Plan", Duration: 30 * 24 * time.Hour, AmountKES: 150},
}

// PlanByName returns the plan matching name. Unknown names are an error,
// never a default plan.
func PlanByName(name string) (Plan, error) {
	for _, p := range Plans {
		if p.Name == name {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan: %q", name)
}

func PlanDuration(name string) (time.Duration, error) {
	p, err := PlanByName(name)
	if err != nil {
		return 0, err
	}
	return p.Duration, nil
}

// PlanAmountMinor returns the plan price in KES minor units, the unit
// payment providers report amounts in.
func PlanAmountMinor(name string) (int, error) {
	p, err := PlanByName(name)
	if err != nil {
		return 0, err
	}
	return p.AmountKES * 100, nil
}
