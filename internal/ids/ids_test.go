package ids

import (
	"regexp"
	"strings"
	"testing"
)

var suffixRe = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestGenerateID(t *testing.T) {
	prefixes := []string{PrefixUser, PrefixBusiness, PrefixCircle, PrefixEvent, PrefixPromotion, PrefixMedia, PrefixNotification, PrefixReport, "x"}

	for _, p := range prefixes {
		t.Run(p, func(t *testing.T) {
			id := GenerateID(p)
			if !strings.HasPrefix(id, p+"_") {
				t.Fatalf("expected %q to start with %q", id, p+"_")
			}
			if suffix := strings.TrimPrefix(id, p+"_"); !suffixRe.MatchString(suffix) {
				t.Errorf("expected 8 lowercase hex chars, got %q", suffix)
			}
		})
	}
}

func TestGenerateIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		seen[GenerateID(PrefixEvent)] = true
	}
	// 32 bits of randomness: a handful of collisions in 1000 draws would be suspicious.
	if len(seen) < 995 {
		t.Errorf("expected mostly distinct ids, got %d distinct of 1000", len(seen))
	}
}
