package outputs

import (
	"path/filepath"
	"strings"
)

// The helpers below follow the engine's own notion of a file suffix: the
// final dot-separated part of the last path element, where a leading dot
// (".name") or trailing dot ("name.") does not start a suffix. This differs
// from filepath.Ext for names such as ".JSONPRNT_NOT_SET".

func suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if 0 < i && i < len(name)-1 {
		return name[i:]
	}
	return ""
}

func stem(name string) string {
	return strings.TrimSuffix(name, suffix(name))
}

// withSuffix replaces the suffix of path's last element, or appends one.
func withSuffix(path, newSuffix string) string {
	dir, name := filepath.Split(path)
	return dir + stem(name) + newSuffix
}

// withStem replaces the stem of path's last element, keeping its suffix.
func withStem(path, newStem string) string {
	dir, name := filepath.Split(path)
	return dir + newStem + suffix(name)
}

// join places name under dir unless name is already absolute.
func join(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}
