package routing

import (
	"github.com/lintang-b-s/evacroute/pkg/costfunction"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
}
