package schema

// ValidIdentifier reports whether s follows the identifier rules used for
// collection and field names: letters, digits, and underscore, not starting
// with a digit. Names are used verbatim as API path segments, so anything
// looser would leak into routing.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
