package locale

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want Language
	}{
		{"hej där", Swedish},
		{"vad kostar den?", Swedish},
		{"jag gillar den blå", Swedish},
		{"nånting åt min syster", Swedish}, // å forces Swedish
		{"hello, do you have watches?", English},
		{"how much is it", English},
		{"show me more", English},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestForFallsBackToEnglish(t *testing.T) {
	unknown := For(Language("de"))
	english := For(English)

	if unknown.HumanRequestWords[0] != english.HumanRequestWords[0] {
		t.Errorf("unknown language table = %v", unknown.HumanRequestWords)
	}
	if Supported(Language("de")) {
		t.Error("Supported(de) = true")
	}
	if !Supported(Swedish) {
		t.Error("Supported(sv) = false")
	}
}

func TestContainsAny(t *testing.T) {
	table := For(English)

	if !ContainsAny("I want to TALK TO A HUMAN please", table.HumanRequestWords) {
		t.Error("case-insensitive phrase match failed")
	}
	if ContainsAny("just browsing", table.HumanRequestWords) {
		t.Error("false positive on unrelated text")
	}
}

func TestCountMatches(t *testing.T) {
	table := For(Swedish)

	if got := CountMatches("tack, det var toppen", table.PositiveWords); got != 2 {
		t.Errorf("CountMatches = %d, want 2", got)
	}
	if got := CountMatches("har ni klockor", table.PositiveWords); got != 0 {
		t.Errorf("CountMatches = %d, want 0", got)
	}
}
