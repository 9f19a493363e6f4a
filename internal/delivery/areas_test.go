package delivery

import "testing"

func TestIsKnownArea(t *testing.T) {
	for _, area := range Areas {
		if !IsKnownArea(area) {
			t.Fatalf("listed area %q not recognized", area)
		}
	}
}

func TestIsKnownAreaCaseAndWhitespace(t *testing.T) {
	if !IsKnownArea("  futa estate ") {
		t.Fatal("matching should ignore case and surrounding whitespace")
	}
	if !IsKnownArea("OTHER") {
		t.Fatal("Other should match case-insensitively")
	}
}

func TestIsKnownAreaRejectsUnknown(t *testing.T) {
	for _, value := range []string{"", "   ", "Atlantis", "FUTA"} {
		if IsKnownArea(value) {
			t.Fatalf("%q should not be a known area", value)
		}
	}
}
