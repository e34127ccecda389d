package folderhash

import "testing"

func TestParseHumanSize(t *testing.T) {
	testCases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"512", 512, false},
		{"512B", 512, false},
		{"4k", 4096, false},
		{"64KB", 64 * 1024, false},
		{"2M", 2 * 1024 * 1024, false},
		{"1.5M", 1536 * 1024, false},
		{"1G", 1024 * 1024 * 1024, false},
		{" 8m ", 8 * 1024 * 1024, false},
		{"", 0, true},
		{"M", 0, true},
		{"0", 0, true},
		{"12X", 0, true},
		{"1.2.3K", 0, true},
	}

	for _, tc := range testCases {
		got, err := ParseHumanSize(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHumanSize(%q) = %d, expected error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHumanSize(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHumanSize(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatHumanSize(t *testing.T) {
	testCases := []struct {
		size int
		want string
	}{
		{0, "0"},
		{1000, "1000"},
		{1024, "1K"},
		{1536, "1536"},
		{2 * 1024 * 1024, "2M"},
		{3 * 1024 * 1024 * 1024, "3G"},
	}

	for _, tc := range testCases {
		if got := FormatHumanSize(tc.size); got != tc.want {
			t.Errorf("FormatHumanSize(%d) = %s, want %s", tc.size, got, tc.want)
		}
		if tc.size > 0 {
			if back, err := ParseHumanSize(FormatHumanSize(tc.size)); err != nil || back != tc.size {
				t.Errorf("round trip of %d gave %d, %v", tc.size, back, err)
			}
		}
	}
}
