package routing

import (
	"github.com/lintang-b-s/evacroute/pkg"
	da "github.com/lintang-b-s/evacroute/pkg/datastructure"
	"github.com/lintang-b-s/evacroute/pkg/util"
)

// Dijkstra. single-pair shortest path over the penalized edge weights. One instance serves
// one query.
type Dijkstra struct {
	graph        *da.Graph
	costFunction CostFunction

	info map[string]*vertexInfo
	pq   *da.MinHeap[string]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, costFunction CostFunction) *Dijkstra {
	return &Dijkstra{
		graph:        graph,
		costFunction: costFunction,
		info:         make(map[string]*vertexInfo),
		pq:           da.NewFourAryHeap[string](),
	}
}

// ShortestPath returns the penalized cost from s to t and the edges of the path in travel
// order. The search stops once t is popped from the queue. found is false when t is
// unreachable.
func (us *Dijkstra) ShortestPath(s, t string) (float64, []da.Edge, bool) {
	us.pq.Preallocate(us.graph.NumberOfNodes())

	sNode := da.NewPriorityQueueNode(0, s)
	us.pq.Insert(sNode)
	us.info[s] = newVertexInfo(0, nil, sNode)

	for !us.pq.IsEmpty() {
		if us.graphSearchUni(t) {
			return us.info[t].getDist(), us.retrievePath(s, t), true
		}
	}
	return pkg.INF_WEIGHT, nil, false
}

// graphSearchUni settles the queue minimum and relaxes its outgoing edges. Returns true when
// the settled node is the target.
func (us *Dijkstra) graphSearchUni(t string) bool {
	queryKey, _ := us.pq.ExtractMin()
	uId := queryKey.GetItem()
	uInfo := us.info[uId]
	uInfo.settled = true
	uInfo.heapNode = nil
	us.numSettledNodes++

	if uId == t {
		return true
	}

	for _, e := range us.graph.GetOutEdges(uId) {
		vId := e.GetTo()
		vInfo, seen := us.info[vId]
		if seen && vInfo.settled {
			continue
		}

		newDist := uInfo.getDist() + us.costFunction.GetWeight(e)
		edge := e

		if !seen {
			vNode := da.NewPriorityQueueNode(newDist, vId)
			us.pq.Insert(vNode)
			us.info[vId] = newVertexInfo(newDist, &edge, vNode)
			continue
		}

		if newDist < vInfo.getDist() {
			vInfo.dist = newDist
			vInfo.parentEdge = &edge
			_ = us.pq.DecreaseKey(vInfo.heapNode, newDist)
		}
	}
	return false
}

func (us *Dijkstra) retrievePath(s, t string) []da.Edge {
	path := make([]da.Edge, 0)
	cur := t
	for cur != s {
		e := us.info[cur].getParentEdge()
		path = append(path, *e)
		cur = e.GetFrom()
	}
	return util.ReverseG(path)
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
