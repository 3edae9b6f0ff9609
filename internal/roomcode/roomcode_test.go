package roomcode

import "testing"

func TestGenerateShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != Length {
			t.Fatalf("expected %d characters, got %q", Length, code)
		}
		if !Valid(code) {
			t.Fatalf("generated code %q is not valid", code)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"ab12cd":    "AB12CD",
		" ab12cd  ": "AB12CD",
		"AB12CD":    "AB12CD",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"AB12CD", "000000", "ZZZZZZ"}
	for _, code := range valid {
		if !Valid(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "AB12C", "AB12CDE", "ab12cd", "AB12C!", "AB 2CD"}
	for _, code := range invalid {
		if Valid(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
