package valve

// hopDistances runs one breadth-first search per valve and returns the
// dense V×V matrix of move counts (Unreachable when no path exists).
//
// Complexity: O(V·(V+E)) time, O(V²) space.
func hopDistances(valves []Valve) []int {
	var n = len(valves)
	dist := make([]int, n*n)
	for i := range dist {
		dist[i] = Unreachable
	}

	queue := make([]int, 0, n)
	for src := 0; src < n; src++ {
		row := dist[src*n : (src+1)*n]
		row[src] = 0
		queue = append(queue[:0], src)
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, v := range valves[u].Tunnels {
				if row[v] != Unreachable {
					continue
				}
				row[v] = row[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return dist
}
