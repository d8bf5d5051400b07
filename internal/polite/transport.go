package polite

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that applies the polite-fetch pipeline:
// Fingerprint → RobotsCheck → RateLimiter → Delay → Send.
// The feed provider serves the export to browsers only, so every request
// goes out with a rotating browser identity.
type Transport struct {
	Base        http.RoundTripper
	Fingerprint *FingerprintPool
	Robots      *RobotsChecker
	RateLimiter *rate.Limiter
	Delay       *Delay
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var ua string
	if t.Fingerprint != nil {
		fp := t.Fingerprint.Next()
		ua = fp.UserAgent
		req.Header.Set("User-Agent", fp.UserAgent)
		for key, vals := range fp.Headers {
			if req.Header.Get(key) == "" {
				for _, v := range vals {
					req.Header.Add(key, v)
				}
			}
		}
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(ua, req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if t.Delay != nil {
		if err := t.Delay.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
