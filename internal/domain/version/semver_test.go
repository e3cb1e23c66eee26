package version

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple version", "1.2.3", "1.2.3", false},
		{"with v prefix", "v1.2.3", "1.2.3", false},
		{"with prerelease", "1.2.3-alpha", "1.2.3-alpha", false},
		{"with metadata", "1.2.3+build", "1.2.3+build", false},
		{"with prerelease and metadata", "1.2.3-beta.1+build.123", "1.2.3-beta.1+build.123", false},
		{"zero version", "0.0.0", "0.0.0", false},
		{"large numbers", "100.200.300", "100.200.300", false},
		{"invalid - empty", "", "", true},
		{"invalid - not a version", "foo", "", true},
		{"invalid - missing patch", "1.2", "", true},
		{"invalid - letters in version", "1.a.3", "", true},
		{"invalid - trailing garbage", "1.2.3junk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Parse().String() = %v, want %v", got.String(), tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"0.0.0", "1.2.3", "10.20.30", "1.0.0-rc.1", "2.1.0+build.7", "3.0.0-beta+exp.sha.5114f85"}
	for _, s := range inputs {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		if v.String() != s {
			t.Errorf("Parse(%q).String() = %q, want round-trip equality", s, v.String())
		}
		again, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(Parse(%q).String()) error = %v", s, err)
		}
		if again != v {
			t.Errorf("round trip of %q produced a different value", s)
		}
	}
}

func TestSemanticVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v1   string
		v2   string
		want int
	}{
		{"equal versions", "1.0.0", "1.0.0", 0},
		{"major less", "1.0.0", "2.0.0", -1},
		{"major greater", "2.0.0", "1.0.0", 1},
		{"minor less", "1.1.0", "1.2.0", -1},
		{"patch greater", "1.0.2", "1.0.1", 1},
		{"prerelease lower than release", "1.0.0-alpha", "1.0.0", -1},
		{"release higher than prerelease", "1.0.0", "1.0.0-rc.1", 1},
		{"prerelease ordering", "1.0.0-alpha", "1.0.0-beta", -1},
		{"metadata ignored", "1.0.0+a", "1.0.0+b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v1 := MustParse(tt.v1)
			v2 := MustParse(tt.v2)
			if got := v1.Compare(v2); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.v1, tt.v2, got, tt.want)
			}
		})
	}
}

func TestBumpType_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		bump    BumpType
		want    string
	}{
		{"major resets minor and patch", "1.2.3", BumpMajor, "2.0.0"},
		{"minor resets patch", "1.2.3", BumpMinor, "1.3.0"},
		{"patch increments patch only", "1.2.3", BumpPatch, "1.2.4"},
		{"major clears prerelease", "1.2.3-rc.1", BumpMajor, "2.0.0"},
		{"minor clears prerelease", "1.2.3-rc.1", BumpMinor, "1.3.0"},
		{"patch clears prerelease", "1.2.3-rc.1", BumpPatch, "1.2.4"},
		{"patch clears metadata", "1.2.3+build.9", BumpPatch, "1.2.4"},
		{"bump from zero", "0.0.0", BumpMinor, "0.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.bump.Apply(MustParse(tt.current))
			if got.String() != tt.want {
				t.Errorf("%s.Apply(%s) = %s, want %s", tt.bump, tt.current, got, tt.want)
			}
			if got.Prerelease() != "" || got.Metadata() != "" {
				t.Errorf("%s.Apply(%s) kept prerelease/metadata", tt.bump, tt.current)
			}
		})
	}
}

func TestBumpType_Apply_PatchProperty(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0.0.0", "1.2.3", "9.9.9", "4.0.1-alpha+meta"} {
		v := MustParse(s)
		bumped, err := Parse(BumpPatch.Apply(v).String())
		if err != nil {
			t.Fatalf("re-parse after patch bump of %q: %v", s, err)
		}
		if bumped.Patch() != v.Patch()+1 {
			t.Errorf("patch bump of %q: patch = %d, want %d", s, bumped.Patch(), v.Patch()+1)
		}
	}
}

func TestIncrement(t *testing.T) {
	t.Parallel()

	got, err := Increment(BumpMinor, "1.4.9")
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if got.String() != "1.5.0" {
		t.Errorf("Increment(minor, 1.4.9) = %s, want 1.5.0", got)
	}

	if _, err := Increment(BumpPatch, "not-a-version"); err == nil {
		t.Error("Increment() with invalid version, want error")
	}
}

func TestParseBumpType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"major", "minor", "patch"} {
		if _, err := ParseBumpType(valid); err != nil {
			t.Errorf("ParseBumpType(%q) error = %v", valid, err)
		}
	}

	if _, err := ParseBumpType("prerelease"); err == nil {
		t.Error("ParseBumpType(prerelease), want error")
	}
	if _, err := ParseBumpType(""); err == nil {
		t.Error("ParseBumpType(empty), want error")
	}
}
