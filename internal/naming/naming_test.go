package naming

import (
	"regexp"
	"testing"
)

var prefixPattern = regexp.MustCompile(`^[a-z]+-[a-z]+-[0-9a-f]{4}$`)

func TestDNSPrefixFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := DNSPrefix()
		if !prefixPattern.MatchString(p) {
			t.Fatalf("DNSPrefix() = %q, want adjective-noun-hex4", p)
		}
	}
}

func TestDNSPrefixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[DNSPrefix()] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied prefixes, got %v", seen)
	}
}

func TestAgentDNSPrefix(t *testing.T) {
	if got := AgentDNSPrefix("calm-sea-ab12"); got != "calm-sea-ab12-agent" {
		t.Fatalf("AgentDNSPrefix() = %q", got)
	}
}
