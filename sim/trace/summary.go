package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	UniquePIDs       int
	ByKind           map[Kind]int
	DropsByQueue     map[string]int // destination queue -> number of processes dropped there
	DispatchByDevice map[string]int // device -> number of dispatches
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByKind:           make(map[Kind]int),
		DropsByQueue:     make(map[string]int),
		DispatchByDevice: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	pids := make(map[int]struct{})
	summary.TotalTransitions = len(st.Transitions)
	for _, r := range st.Transitions {
		summary.ByKind[r.Kind]++
		pids[r.PID] = struct{}{}
		switch r.Kind {
		case KindDrop:
			summary.DropsByQueue[r.To]++
		case KindDispatch:
			summary.DispatchByDevice[r.To]++
		}
	}
	summary.UniquePIDs = len(pids)

	return summary
}
