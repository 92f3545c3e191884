package analyzer

import (
	"testing"

	"hiresight/internal/types"
)

func TestExtractExperienceLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "explicit senior beats years",
			text: "Senior Product Manager, 10+ years experience",
			want: types.LevelSenior,
		},
		{
			name: "lead keyword",
			text: "We need a Principal engineer to drive the platform",
			want: types.LevelLead,
		},
		{
			name: "staff keyword",
			text: "Staff product role on the growth team",
			want: types.LevelLead,
		},
		{
			name: "sr abbreviation",
			text: "Sr. PM for the payments team",
			want: types.LevelSenior,
		},
		{
			name: "junior keyword",
			text: "Junior analyst position",
			want: types.LevelEntry,
		},
		{
			name: "ten years maps to lead",
			text: "requires 12 years of product experience",
			want: types.LevelLead,
		},
		{
			name: "six years maps to senior",
			text: "7 years of experience required",
			want: types.LevelSenior,
		},
		{
			name: "three years maps to mid",
			text: "3+ years working with data",
			want: types.LevelMid,
		},
		{
			name: "one year maps to entry",
			text: "1 year of internship experience",
			want: types.LevelEntry,
		},
		{
			name: "nothing stated defaults to mid",
			text: "Product Manager for our platform team",
			want: types.LevelMid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractExperienceLevel(tt.text); got != tt.want {
				t.Errorf("ExtractExperienceLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractYearsExperience(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{"range form", "5 to 7 years of experience", intPtr(5)},
		{"plus form", "8+ years in product", intPtr(8)},
		{"dash form", "3-5 years required", intPtr(3)},
		{"absent", "experienced product leader", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractYearsExperience(tt.text)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ExtractYearsExperience() = %d, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("ExtractYearsExperience() = nil, want %d", *tt.want)
			case tt.want != nil && got != nil && *got != *tt.want:
				t.Errorf("ExtractYearsExperience() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestExtractSalaryInfo(t *testing.T) {
	tests := []struct {
		name        string
		salaryRange string
		text        string
		want        types.SalaryInfo
	}{
		{
			name:        "k suffix range",
			salaryRange: "$120k - $150k",
			want: types.SalaryInfo{
				Min: 120000, Max: 150000, Average: 135000,
				Range: "$120k - $150k", Parsed: true,
			},
		},
		{
			name:        "comma separated range",
			salaryRange: "$95,000-$110,000",
			want: types.SalaryInfo{
				Min: 95000, Max: 110000, Average: 102500,
				Range: "$95,000-$110,000", Parsed: true,
			},
		},
		{
			name:        "unparseable range kept raw",
			salaryRange: "competitive",
			want:        types.SalaryInfo{Range: "competitive"},
		},
		{
			name: "range found in text",
			text: "We offer $100k to $130k plus equity.",
			want: types.SalaryInfo{
				Min: 100000, Max: 130000, Average: 115000,
				Range: "$100k - $130k", Parsed: true,
			},
		},
		{
			name: "no salary anywhere",
			text: "Join a great team working on products.",
			want: types.SalaryInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSalaryInfo(tt.salaryRange, tt.text)
			if got != tt.want {
				t.Errorf("ExtractSalaryInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractRemotePolicy(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"fully remote", "This is a fully remote position", types.RemoteFully},
		{"remote first", "We are a remote-first company", types.RemoteFully},
		{"hybrid beats remote", "Hybrid schedule with some remote days", types.RemoteHybrid},
		{"on site", "This role is on-site in Austin", types.RemoteOnSite},
		{"bare remote", "Remote work possible for the right candidate", types.RemoteAvailable},
		{"unspecified", "Join our product team", types.RemoteNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRemotePolicy(tt.text); got != tt.want {
				t.Errorf("ExtractRemotePolicy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCompanyTraits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.CompanyTraits
	}{
		{"startup", "We are an early-stage startup", types.CompanyTraits{Stage: "Startup"}},
		{"series b", "Our series b company is growing", types.CompanyTraits{Stage: "Series B"}},
		{"enterprise", "A Fortune 500 enterprise", types.CompanyTraits{Stage: "Enterprise"}},
		{"size", "join our 200+ person team", types.CompanyTraits{Size: "200+ employees"}},
		{
			"stage and size",
			"fast-growing startup with 50 employees",
			types.CompanyTraits{Stage: "Startup", Size: "50+ employees"},
		},
		{"neither", "A company doing things", types.CompanyTraits{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCompanyTraits(tt.text); got != tt.want {
				t.Errorf("ExtractCompanyTraits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractEducation(t *testing.T) {
	text := "Bachelor's degree required, MBA preferred."
	got := ExtractEducation(text)
	want := []string{"bachelor's degree", "mba"}

	if len(got) != len(want) {
		t.Fatalf("ExtractEducation() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractEducation()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractEducationEmpty(t *testing.T) {
	if got := ExtractEducation("no formal requirements"); len(got) != 0 {
		t.Errorf("ExtractEducation() = %v, want empty", got)
	}
}

func intPtr(n int) *int { return &n }
