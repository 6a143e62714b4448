package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Trim and lowercase",
			input:    "  Hello World  ",
			expected: "hello world",
		},
		{
			name:     "Already normalized",
			input:    "hello",
			expected: "hello",
		},
		{
			name:     "Tabs and newlines trimmed",
			input:    "\t John Smith \n",
			expected: "john smith",
		},
		{
			name:     "Unicode folding",
			input:    " ÀÉÎ ",
			expected: "àéî",
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
	}

	normalizers := map[string]func() interface{ Normalize(string) string }{
		"default":   func() interface{ Normalize(string) string } { return NewDefaultNormalizer() },
		"optimized": func() interface{ Normalize(string) string } { return NewOptimizedNormalizer() },
	}

	for implName, build := range normalizers {
		n := build()
		for _, tc := range tests {
			t.Run(implName+"/"+tc.name, func(t *testing.T) {
				if got := n.Normalize(tc.input); got != tc.expected {
					t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
				}
			})
		}
	}
}

func TestOptimizedMatchesDefaultOnASCII(t *testing.T) {
	inputs := []string{" Hello ", "MiXeD CaSe", "already lower", "  ", "A"}
	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()
	for _, in := range inputs {
		if d, o := def.Normalize(in), opt.Normalize(in); d != o {
			t.Errorf("normalizers disagree on %q: default=%q optimized=%q", in, d, o)
		}
	}
}
