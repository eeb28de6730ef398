package backend

import "strings"

// APIURL builds an absolute catalog API URL for endpoint. Absolute endpoints are
// returned unchanged, "/api..." paths are joined to base, and anything else is
// placed under "/api/".
func APIURL(base, endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if strings.HasPrefix(endpoint, "/api") {
		return base + endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return base + "/api" + endpoint
}
