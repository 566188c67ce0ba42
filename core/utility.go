package core

import "strings"

func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}

func unsafeString(s string) string {
	return strings.TrimSuffix(s, "\x00")
}

// appendUnique appends names not already in list, ignoring null terminators
func appendUnique(list []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, l := range list {
			if unsafeString(l) == unsafeString(name) {
				found = true
				break
			}
		}
		if !found {
			list = append(list, name)
		}
	}
	return list
}
