package datastructure

// StronglyConnectedComponents runs kosaraju's algorithm over the directed graph. Components are
// returned in topological order of the condensation.
func (g *Graph) StronglyConnectedComponents() [][]string {
	order := make([]string, 0, len(g.nodeOrder))
	visited := make(map[string]bool, len(g.nodeOrder))

	for _, n := range g.nodeOrder {
		if !visited[n.id] {
			g.dfs(n.id, &order, visited, func(v string, visit func(string)) {
				for _, e := range g.adjList[v] {
					visit(e.to)
				}
			})
		}
	}

	reverseAdj := make(map[string][]string, len(g.nodeOrder))
	for _, n := range g.nodeOrder {
		for _, e := range g.adjList[n.id] {
			reverseAdj[e.to] = append(reverseAdj[e.to], e.from)
		}
	}

	visited = make(map[string]bool, len(g.nodeOrder))
	components := make([][]string, 0, 10)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if visited[v] {
			continue
		}
		component := make([]string, 0, 10)
		g.dfs(v, &component, visited, func(u string, visit func(string)) {
			for _, w := range reverseAdj[u] {
				visit(w)
			}
		})
		components = append(components, component)
	}
	return components
}

// LargestComponentSize is the node count of the biggest strongly connected component.
func LargestComponentSize(components [][]string) int {
	largest := 0
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
	}
	return largest
}

func (g *Graph) dfs(v string, output *[]string, visited map[string]bool,
	neighbours func(v string, visit func(string))) {

	visited[v] = true
	neighbours(v, func(w string) {
		if !visited[w] {
			g.dfs(w, output, visited, neighbours)
		}
	})

	*output = append(*output, v)
}
