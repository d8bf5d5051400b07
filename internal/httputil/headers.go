package httputil

import "net/http"

// FeedHeaders returns the headers the catalog export endpoints expect.
// Cache-Control forces the provider to regenerate the export instead of
// serving a stale cached copy.
func FeedHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/xml, text/xml, */*")
	h.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	return h
}
