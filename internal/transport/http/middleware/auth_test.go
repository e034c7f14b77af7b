package middleware

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", true},
		{"quoted", `Bearer "abc.def.ghi"`, "abc.def.ghi", true},
		{"trailing junk after comma", "Bearer abc.def.ghi, extra", "abc.def.ghi", true},
		{"trailing junk after space", "Bearer abc.def.ghi garbage", "abc.def.ghi", true},
		{"empty", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"wrong scheme", "Basic abc", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ExtractBearerToken(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}
