package sanitize

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Napoleon", "Napoleon"},
		{"  padded  ", "padded"},
		{"", "Anon"},
		{"@@@!!!", "Anon"},
		{"emojiéname", "emojiname"},
		{"FUCKface", "****face"},
		{"aDmInIstrator", "*****Istrator"},
		{"this name is far too long to fit the limit", "this name is far too long t"},
	}
	for _, c := range cases {
		if got := DisplayName(c.in); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDisplayNameDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if DisplayName("General Shitlord") != "General ****lord" {
			t.Fatal("sanitization must be stable across calls")
		}
	}
}
