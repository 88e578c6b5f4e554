// ==============================================================================================
// FILE: object/visibility.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Implements the name-prefix visibility rules on instance members
//          (spec §4.5).
// ==============================================================================================

package object

import "strings"

// Visibility classifies a member name by its prefix.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// ClassifyName returns the visibility implied by a member name's prefix:
// `__name` is protected, `_name` (but not `__name`) is private, anything
// else is public.
func ClassifyName(name string) Visibility {
	switch {
	case strings.HasPrefix(name, "__"):
		return Protected
	case strings.HasPrefix(name, "_"):
		return Private
	default:
		return Public
	}
}

// CheckAccess enforces spec §4.5: `current` is the instance bound to
// `ini` at the access site (nil for external/top-level access); `target`
// is the instance whose member is being read or written. Returns false
// when the access must be rejected.
func CheckAccess(current *Instance, target *Instance, name string) bool {
	switch ClassifyName(name) {
	case Protected:
		if current == nil {
			return false
		}
		return current.Class.IsSubclassOf(target.Class)
	case Private:
		if current == nil {
			return false
		}
		return current.Class == target.Class
	default:
		return true
	}
}
