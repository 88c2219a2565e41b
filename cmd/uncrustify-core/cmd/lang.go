package cmd

import (
	"fmt"
	"strings"

	"github.com/uncrustify-go/frontend/pkg/langset"
)

// parseLang accepts a comma-separated list of language short names
// (c, cpp, cs, d, java, oc, pawn, vala, ecma) and ORs the corresponding
// langset.Mask bits together, matching the original tool's "active
// language is a bitmask" model.
func parseLang(s string) (langset.Mask, error) {
	var m langset.Mask
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "c":
			m |= langset.C
		case "cpp", "c++":
			m |= langset.CPP
		case "cs", "c#":
			m |= langset.CS
		case "d":
			m |= langset.D
		case "java":
			m |= langset.Java
		case "oc", "objc", "objective-c":
			m |= langset.ObjC
		case "pawn":
			m |= langset.Pawn
		case "vala":
			m |= langset.Vala
		case "ecma", "js", "javascript":
			m |= langset.ECMA
		default:
			return 0, fmt.Errorf("unrecognized language %q", part)
		}
	}
	if m == 0 {
		return 0, fmt.Errorf("no language specified")
	}
	return m, nil
}
