package deps

// DetectCycles reports dependency cycles in the catalog snapshot using
// depth-first search with a recursion stack. Each back edge the search
// meets yields one cycle, as an ordered name slice, deterministic across
// runs. Every skill is expanded only once, so when cycles share skills not
// every elementary cycle is reported. This is a diagnostic operation;
// resolution itself tolerates cycles.
func (r *Resolver) DetectCycles() [][]string {
	return r.findCycles(r.order)
}

// findCycles runs the recursion-stack DFS over the given node set.
func (r *Resolver) findCycles(nodes []string) [][]string {
	var cycles [][]string
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string
	seenCycles := map[string]bool{}

	var dfs func(name string)
	dfs = func(name string) {
		if onStack[name] {
			start := 0
			for i, n := range stack {
				if n == name {
					start = i
					break
				}
			}
			cycle := make([]string, len(stack)-start)
			copy(cycle, stack[start:])
			key := cycleKey(cycle)
			if !seenCycles[key] {
				seenCycles[key] = true
				cycles = append(cycles, cycle)
			}
			return
		}
		if visited[name] {
			return
		}

		visited[name] = true
		stack = append(stack, name)
		onStack[name] = true

		if skill, ok := r.skills[name]; ok {
			for _, dep := range skill.DependsOn {
				if _, known := r.skills[dep]; known {
					dfs(dep)
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[name] = false
	}

	for _, name := range nodes {
		if !visited[name] {
			dfs(name)
		}
	}

	return cycles
}

func cycleKey(cycle []string) string {
	key := ""
	for _, name := range cycle {
		key += name + "\x00"
	}
	return key
}
