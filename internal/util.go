package internal

// ReconstructPath walks predecessor links from goal back to start and
// returns the chain in start-to-goal order. It stops early if a node has no
// predecessor or after limit hops, so a malformed chain cannot loop forever.
func ReconstructPath(
	predecessor func(node int) (int, bool),
	goal int,
	start int,
	limit int,
) []int {
	path := []int{goal}
	for current := goal; current != start && len(path) <= limit; {
		previous, ok := predecessor(current)
		if !ok {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
