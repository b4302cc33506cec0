package batch

import (
	"fmt"

	"Thruster/internal/calc/tank"
)

type TankBatchInput struct {
	Items []tank.Input `json:"items"`
}

type TankBatchResult struct {
	Results []tank.Result `json:"results"`
	Failing int           `json:"failing"`
}

// CalculateTanks checks every item and stops at the first invalid one.
func CalculateTanks(in TankBatchInput) (TankBatchResult, error) {
	if len(in.Items) == 0 {
		return TankBatchResult{}, fmt.Errorf("no items")
	}
	out := TankBatchResult{Results: make([]tank.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := tank.Calculate(item)
		if err != nil {
			return TankBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		if !res.OK {
			out.Failing++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
