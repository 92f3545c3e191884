package analyzer

import (
	"testing"

	"hiresight/internal/types"
)

func TestFrequencyTableOrdering(t *testing.T) {
	values := []string{"b", "a", "c", "a", "b", "d"}

	got := frequencyTable(values, 50)
	want := []types.FrequencyEntry{
		{Value: "b", Count: 2},
		{Value: "a", Count: 2},
		{Value: "c", Count: 1},
		{Value: "d", Count: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("frequencyTable() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFrequencyTableDeterministic(t *testing.T) {
	values := []string{"x", "y", "z", "y", "x", "z"}

	first := frequencyTable(values, 50)
	for range 20 {
		again := frequencyTable(values, 50)
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("frequencyTable() ordering unstable: %v vs %v", first, again)
			}
		}
	}
}

func TestFrequencyTableCap(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}
	if got := frequencyTable(values, 3); len(got) != 3 {
		t.Errorf("frequencyTable() returned %d entries, want 3", len(got))
	}
}

func TestSummarizeSalariesEmpty(t *testing.T) {
	if got := summarizeSalaries(nil); got != nil {
		t.Errorf("summarizeSalaries(nil) = %+v, want nil", got)
	}
}

func TestSummarizeSalaries(t *testing.T) {
	salaries := []types.SalaryInfo{
		{Min: 100000, Max: 130000, Parsed: true},
		{Min: 120000, Max: 150000, Parsed: true},
	}

	got := summarizeSalaries(salaries)
	if got == nil {
		t.Fatal("summarizeSalaries() = nil")
	}
	if got.MarketMin != 100000 || got.MarketMax != 150000 {
		t.Errorf("market range = %d-%d, want 100000-150000", got.MarketMin, got.MarketMax)
	}
	if got.AverageMin != 110000 || got.AverageMax != 140000 {
		t.Errorf("averages = %d/%d, want 110000/140000", got.AverageMin, got.AverageMax)
	}
	if got.SampleSize != 2 {
		t.Errorf("SampleSize = %d, want 2", got.SampleSize)
	}
}

func TestCompareMarketEducationFrequency(t *testing.T) {
	insights := []*types.PerDocumentInsight{
		{ExperienceLevel: types.LevelMid, RemotePolicy: types.RemoteHybrid, Education: []string{"mba"}},
		{ExperienceLevel: types.LevelMid, RemotePolicy: types.RemoteOnSite},
		{ExperienceLevel: types.LevelSenior, RemotePolicy: types.RemoteHybrid},
		{ExperienceLevel: types.LevelSenior, RemotePolicy: types.RemoteHybrid, Education: []string{"bachelor's degree"}},
	}

	got := compareMarket(insights, nil)
	if got.CommonRequirements.EducationReqFrequency != 0.5 {
		t.Errorf("EducationReqFrequency = %v, want 0.5", got.CommonRequirements.EducationReqFrequency)
	}
	if got.ExperienceLevels[types.LevelMid] != 2 || got.ExperienceLevels[types.LevelSenior] != 2 {
		t.Errorf("ExperienceLevels = %v", got.ExperienceLevels)
	}
	if got.RemotePolicies[types.RemoteHybrid] != 3 {
		t.Errorf("RemotePolicies = %v, want 3 hybrid", got.RemotePolicies)
	}
	if got.CommonRequirements.AverageYearsRequired != 0 {
		t.Errorf("AverageYearsRequired = %v, want 0 when no years present", got.CommonRequirements.AverageYearsRequired)
	}
}
