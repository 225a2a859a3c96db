package naming

import (
	"strings"

	"github.com/anandvarma/namegen"
)

var gen = namegen.New()

// ClusterID returns a random, human-readable cluster id that is a valid DNS label,
// for example "brave-turing".
func ClusterID() string {
	id := strings.ToLower(gen.Get())
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, id)
}
