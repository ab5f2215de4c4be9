package costfunction

import (
	"github.com/lintang-b-s/evacroute/pkg"
)

type EdgeAttributes interface {
	GetWeight() float64
	IsHazardous() bool
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}

// HazardCostFunction. relaxation weight for the route search. A hazardous edge costs
// penaltyFactor times its length.
type HazardCostFunction struct {
	penaltyFactor float64
}

func NewHazardCostFunction() *HazardCostFunction {
	return &HazardCostFunction{penaltyFactor: pkg.HAZARD_PENALTY_FACTOR}
}

// NewHazardCostFunctionWithPenalty falls back to the default factor when penaltyFactor would
// make hazardous roads cheaper than safe ones.
func NewHazardCostFunctionWithPenalty(penaltyFactor float64) *HazardCostFunction {
	if !(penaltyFactor >= 1) {
		penaltyFactor = pkg.HAZARD_PENALTY_FACTOR
	}
	return &HazardCostFunction{penaltyFactor: penaltyFactor}
}

func (cf *HazardCostFunction) GetWeight(e EdgeAttributes) float64 {
	if e.IsHazardous() {
		return e.GetWeight() * cf.penaltyFactor
	}
	return e.GetWeight()
}
