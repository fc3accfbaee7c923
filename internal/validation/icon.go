package validation

import (
	"fmt"
)

// IconKeys is the fixed icon catalog a link may reference. The frontend maps
// each key to a glyph and brand color; the backend only stores the key.
var IconKeys = map[string]struct{}{
	"website":   {},
	"x":         {},
	"instagram": {},
	"facebook":  {},
	"linkedin":  {},
	"github":    {},
	"email":     {},
	"music":     {},
	"video":     {},
	"shop":      {},
	"blog":      {},
	"photos":    {},
	"gaming":    {},
	"coffee":    {},
	"book":      {},
	"podcast":   {},
	"contact":   {},
	"location":  {},
	"calendar":  {},
	"donate":    {},
	"support":   {},
	"reviews":   {},
	"other":     {},
}

// ValidateIcon accepts the empty string (no icon) or any catalog key.
func ValidateIcon(icon string) error {
	if icon == "" {
		return nil
	}
	if _, ok := IconKeys[icon]; !ok {
		return fmt.Errorf("unknown icon %q", icon)
	}
	return nil
}
