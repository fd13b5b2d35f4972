// Package navguard decides which application paths a session may open.
//
// Allowed is a pure function over the granted paths returned at login.
// SessionContext carries the current session explicitly and persists it
// through a Store so a restart picks it up again.
package navguard

import "strings"

// Allowed reports whether requestedPath is reachable with grantedPaths.
//
// A granted path allows itself and everything below it on a segment
// boundary: "/patients" allows "/patients/42" but not "/patientsx".
// Trailing slashes are ignored and empty granted paths grant nothing.
func Allowed(requestedPath string, grantedPaths []string) bool {
	req := normalize(requestedPath)
	if req == "" {
		return false
	}
	for _, g := range grantedPaths {
		g = normalize(g)
		if g == "" {
			continue
		}
		if req == g {
			return true
		}
		if g == "/" || strings.HasPrefix(req, g+"/") {
			return true
		}
	}
	return false
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
