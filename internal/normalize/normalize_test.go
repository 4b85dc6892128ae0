package normalize

import "testing"

func TestClean_WordBoundaryRepair(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "The office is open.", "The office is open."},
		{"letter digit both directions", "wordA10wordB", "word A 10 word B"},
		{"lower to upper", "employeeHandbook", "employee Handbook"},
		{"whitespace collapse", "a  b\t\tc\n\nd", "a b c d"},
		{"leading and trailing", "  padded  ", "padded"},
		{"acronym untouched", "NASA launched", "NASA launched"},
		{"digits inside word", "open9AMto5PM", "open 9 AMto 5 PM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"wordA10wordB",
		"The  quick\nbrown fox. It jumped2feet.",
		"ﬁnancial reports for Q3",
		"plain already normalized text 42 times",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestClean_LigatureFolding(t *testing.T) {
	got := Clean("ﬁle ﬂow")
	if got != "file flow" {
		t.Fatalf("expected ligatures folded, got %q", got)
	}
}
