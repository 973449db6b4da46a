// Package naming generates human-readable DNS prefixes for cluster
// endpoints. Prefixes are not guaranteed unique; a collision surfaces as a
// remote-side creation error.
package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var adjectives = []string{
	"autumn", "billowing", "bitter", "bold", "broken", "calm", "cool",
	"crimson", "damp", "dawn", "delicate", "divine", "dry", "empty",
	"falling", "floral", "fragrant", "frosty", "green", "hidden", "holy",
	"icy", "late", "lingering", "little", "lively", "long", "misty",
	"morning", "muddy", "nameless", "old", "patient", "polished", "proud",
	"purple", "quiet", "rapid", "restless", "rough", "shy", "silent",
	"small", "snowy", "solitary", "sparkling", "spring", "still", "summer",
	"twilight", "wandering", "weathered", "white", "wild", "winter", "wispy",
	"withered", "young",
}

var nouns = []string{
	"bird", "breeze", "brook", "bush", "butterfly", "cherry", "cloud",
	"darkness", "dawn", "dew", "dream", "dust", "feather", "field", "fire",
	"firefly", "flower", "fog", "forest", "frog", "frost", "glade",
	"glitter", "grass", "haze", "hill", "lake", "leaf", "meadow", "moon",
	"morning", "mountain", "night", "paper", "pine", "pond", "rain",
	"resonance", "river", "sea", "shadow", "shape", "silence", "sky",
	"smoke", "snow", "snowflake", "sound", "star", "sun", "sunset", "surf",
	"thunder", "tree", "violet", "voice", "water", "waterfall", "wave",
	"wildflower", "wind", "wood",
}

const tokenLength = 4

// DNSPrefix returns a prefix of the form adjective-noun-token where the
// token is a short random hex suffix.
func DNSPrefix() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	a := adjectives[randIndex(len(adjectives))]
	n := nouns[randIndex(len(nouns))]
	return fmt.Sprintf("%s-%s-%s", a, n, token)
}

// AgentDNSPrefix derives the agent pool prefix from a master prefix.
func AgentDNSPrefix(masterPrefix string) string {
	return masterPrefix + "-agent"
}

func randIndex(n int) int {
	// uuid.New is backed by crypto/rand; fold part of it into an index.
	u := uuid.New()
	v := int(u[0])<<8 | int(u[1])
	return v % n
}
