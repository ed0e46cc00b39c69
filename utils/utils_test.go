package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Test Sangha", "test_sangha"},
		{"  Santosh Mitra Square  ", "santosh_mitra_square"},
		{"Ekdalia Evergreen!", "ekdalia_evergreen"},
		{"ALL-CAPS_mixed 123", "all-caps_mixed_123"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	if id.Hex() != "507f1f77bcf86cd799439011" {
		t.Fatalf("round-trip mismatch: %s", id.Hex())
	}

	if _, err := ParseID(" 507f1f77bcf86cd799439011 "); err != nil {
		t.Fatalf("surrounding whitespace should be trimmed: %v", err)
	}

	for _, bad := range []string{"", "nonsense", "507f1f77bcf86cd79943901"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) should fail", bad)
		}
	}
}
