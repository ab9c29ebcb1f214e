package hn

import "net/http"

// addHeaders sets headers for json api requests
func addHeaders(req *http.Request, userAgent string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	// firebase serves fresh data anyway, make proxies on the way do the same
	req.Header.Set("Cache-Control", "no-cache")
}
