package diagnosis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProfileBias_Default(t *testing.T) {
	tests := []struct {
		profile Profile
		want    ScoreTable
	}{
		{ProfileRelationship, ScoreTable{"201": 1, "202": 1, "102": 1, "E200": 1, "E220": 1}},
		{ProfileWork, ScoreTable{"003": 1, "301": 1, "303": 1, "E300": 1, "E510": 1, "E500": 1}},
		{ProfileCounsel, ScoreTable{"004": 1, "104": 1, "101": 1, "E200": 1, "E210": 1, "E330": 1}},
		{ProfileSolo, ScoreTable{"005": 1, "E320": 1, "E330": 1, "E011": 1}},
		{ProfileOther, ScoreTable{"E300": 1, "004": 1}},
		{Profile("mystery"), ScoreTable{"E300": 1, "004": 1}},
	}
	for _, tt := range tests {
		got := ScoreTable{}
		DefaultProfileBias().Adjust(SessionContext{Profile: tt.profile}, got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("profile %q mismatch (-want +got):\n%s", tt.profile, diff)
		}
	}
}

func TestLoadBias_Tiers(t *testing.T) {
	tests := []struct {
		load int
		want ScoreTable
	}{
		{0, ScoreTable{}},
		{5, ScoreTable{}},
		{6, ScoreTable{"E300": 1, "E320": 1}},
		{7, ScoreTable{"E300": 1, "E320": 1}},
		{8, ScoreTable{"E300": 1, "E320": 1, "E130": 3, "001": 2, "004": 1}},
		{10, ScoreTable{"E300": 1, "E320": 1, "E130": 3, "001": 2, "004": 1}},
	}
	for _, tt := range tests {
		got := ScoreTable{}
		DefaultLoadBias().Adjust(SessionContext{LoadLevel: tt.load}, got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("load %d mismatch (-want +got):\n%s", tt.load, diff)
		}
	}
}

func TestApplyBias_Cumulative(t *testing.T) {
	scores := ScoreTable{"004": 2}
	ApplyBias(DefaultAdjusters(), SessionContext{Profile: ProfileOther, LoadLevel: 9}, scores)
	// other: E300+1, 004+1; load>=6: E300+1, E320+1; load>=8: E130+3, 001+2, 004+1.
	want := ScoreTable{"004": 4, "E300": 2, "E320": 1, "E130": 3, "001": 2}
	if diff := cmp.Diff(want, scores); diff != "" {
		t.Errorf("bias mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in   string
		want Profile
	}{
		{"relationship", ProfileRelationship},
		{"恋愛", ProfileRelationship},
		{"Work", ProfileWork},
		{"仕事/研究", ProfileWork},
		{"research", ProfileWork},
		{"相談/友人", ProfileCounsel},
		{"friend", ProfileCounsel},
		{"単独", ProfileSolo},
		{"その他", ProfileOther},
		{"", ProfileOther},
		{"astronaut", ProfileOther},
	}
	for _, tt := range tests {
		if got := ParseProfile(tt.in); got != tt.want {
			t.Errorf("ParseProfile(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionContext_Normalize(t *testing.T) {
	tests := []struct {
		in   SessionContext
		want SessionContext
	}{
		{SessionContext{Profile: "仕事", LoadLevel: 4}, SessionContext{Profile: ProfileWork, LoadLevel: 4}},
		{SessionContext{Profile: "", LoadLevel: -3}, SessionContext{Profile: ProfileOther, LoadLevel: 0}},
		{SessionContext{Profile: ProfileSolo, LoadLevel: 42}, SessionContext{Profile: ProfileSolo, LoadLevel: 10}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
