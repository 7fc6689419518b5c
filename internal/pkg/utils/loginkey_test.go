package utils

import "testing"

func TestNormalizeLoginKey(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"John Doe", "john.doe"},
		{"  John   Doe  ", "john.doe"},
		{"MARY-JANE O'Brien", "maryjane.obrien"},
		{"Ravi Kumar 2", "ravi.kumar.2"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		got := NormalizeLoginKey(c.input)
		if got != c.want {
			t.Errorf("NormalizeLoginKey(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeLoginKey_Deterministic(t *testing.T) {
	a := NormalizeLoginKey("Priya Sharma")
	b := NormalizeLoginKey("  priya   SHARMA ")
	if a != b {
		t.Errorf("same name normalized differently: %q vs %q", a, b)
	}
}

func TestManagerEmail(t *testing.T) {
	got := ManagerEmail("John Doe", "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b1234")
	want := "john.doe.1234@rollcall.local"
	if got != want {
		t.Errorf("ManagerEmail = %q, want %q", got, want)
	}

	// Short ids are used whole.
	got = ManagerEmail("Al", "ab")
	want = "al.ab@rollcall.local"
	if got != want {
		t.Errorf("ManagerEmail short id = %q, want %q", got, want)
	}
}
