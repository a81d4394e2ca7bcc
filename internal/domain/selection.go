package domain

// Selection is the set of archive entry names the user has selected.
type Selection []string

// Single returns the only selected name.
func (s Selection) Single() (string, bool) {
	if len(s) != 1 {
		return "", false
	}
	return s[0], true
}
