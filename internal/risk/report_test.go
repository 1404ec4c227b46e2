package risk

import "testing"

func mustRisk(t *testing.T, level Level, dim Dimension, recs ...string) Risk {
	t.Helper()
	r, err := New("s1", "test-risk", level, dim, "desc")
	if err != nil {
		t.Fatal(err)
	}
	r.Recommendations = recs
	return r
}

func TestNew_RejectsInvalidDimension(t *testing.T) {
	if _, err := New("s1", "t", LevelLow, "", "d"); err == nil {
		t.Error("empty dimension must be a construction error, not a default")
	}
	if _, err := New("s1", "t", LevelLow, Dimension("spatial"), "d"); err == nil {
		t.Error("unknown dimension must be rejected")
	}
	if _, err := New("", "t", LevelLow, DimCognitive, "d"); err == nil {
		t.Error("empty session id must be rejected")
	}
}

func TestMust_PanicsOnContractError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on an invalid dimension")
		}
	}()
	Must("s1", "t", LevelLow, "", "d")
}

func TestReport_CountersTrackAdds(t *testing.T) {
	rep := NewReport("s1")
	rep.Add(mustRisk(t, LevelHigh, DimCognitive))
	rep.Add(mustRisk(t, LevelHigh, DimGovernance))
	rep.Add(mustRisk(t, LevelLow, DimEpistemic))

	if rep.TotalRisks() != 3 {
		t.Errorf("TotalRisks = %d, want 3", rep.TotalRisks())
	}
	if rep.CountByLevel(LevelHigh) != 2 || rep.CountByLevel(LevelLow) != 1 {
		t.Errorf("level counts = %v", rep.LevelCounts())
	}

	// total == sum(level counts) after any sequence of adds.
	sum := 0
	for _, c := range rep.LevelCounts() {
		sum += c
	}
	if sum != rep.TotalRisks() {
		t.Errorf("sum(level counts) = %d, TotalRisks = %d", sum, rep.TotalRisks())
	}
}

func TestReport_RecommendationsDeduplicated(t *testing.T) {
	rep := NewReport("s1")
	rep.Add(mustRisk(t, LevelLow, DimCognitive, "decompose the problem", "review policy"))
	rep.Add(mustRisk(t, LevelLow, DimEpistemic, "review policy", "test your code"))

	recs := rep.Recommendations()
	want := []string{"decompose the problem", "review policy", "test your code"}
	if len(recs) != len(want) {
		t.Fatalf("Recommendations = %v, want %v", recs, want)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("rec[%d] = %q, want %q", i, recs[i], want[i])
		}
	}
}

func TestReport_Summarize(t *testing.T) {
	rep := NewReport("s1")
	rep.Summarize()
	if rep.OverallAssessment == "" {
		t.Error("empty report still needs an assessment")
	}

	rep.Add(mustRisk(t, LevelCritical, DimGovernance))
	rep.Summarize()
	if rep.OverallAssessment == "" {
		t.Fatal("assessment not filled")
	}
	if got, _ := rep.HighestLevel(); got != LevelCritical {
		t.Errorf("HighestLevel = %s, want critical", got)
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(LevelLow < LevelMedium && LevelMedium < LevelHigh && LevelHigh < LevelCritical) {
		t.Error("levels must order low < medium < high < critical")
	}
}
