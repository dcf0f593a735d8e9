package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTransitions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalTransitions != 0 {
		t.Errorf("expected 0 transitions, got %d", summary.TotalTransitions)
	}
	if summary.UniquePIDs != 0 {
		t.Errorf("expected 0 unique pids, got %d", summary.UniquePIDs)
	}
	if len(summary.ByKind) != 0 || len(summary.DropsByQueue) != 0 || len(summary.DispatchByDevice) != 0 {
		t.Error("expected empty distributions")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTransitions != 0 || summary.ByKind == nil {
		t.Errorf("nil trace: unexpected summary %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with arrivals, dispatches and drops
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTransitions})
	st.Record(TransitionRecord{Tick: 1, PID: 1, Kind: KindArrival, To: "high"})
	st.Record(TransitionRecord{Tick: 1, PID: 2, Kind: KindArrival, To: "high"})
	st.Record(TransitionRecord{Tick: 3, PID: 1, Kind: KindDispatch, From: "cpu", To: "disk"})
	st.Record(TransitionRecord{Tick: 4, PID: 2, Kind: KindDispatch, From: "cpu", To: "printer"})
	st.Record(TransitionRecord{Tick: 4, PID: 3, Kind: KindDrop, To: "high"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match the recorded transitions
	if summary.TotalTransitions != 5 {
		t.Errorf("expected 5 transitions, got %d", summary.TotalTransitions)
	}
	if summary.UniquePIDs != 3 {
		t.Errorf("expected 3 unique pids, got %d", summary.UniquePIDs)
	}
	if summary.ByKind[KindArrival] != 2 {
		t.Errorf("expected 2 arrivals, got %d", summary.ByKind[KindArrival])
	}
	if summary.DispatchByDevice["disk"] != 1 || summary.DispatchByDevice["printer"] != 1 {
		t.Errorf("unexpected dispatch distribution %v", summary.DispatchByDevice)
	}
	if summary.DropsByQueue["high"] != 1 {
		t.Errorf("expected 1 drop on high, got %d", summary.DropsByQueue["high"])
	}
}
