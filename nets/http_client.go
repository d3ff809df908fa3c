package nets

import (
	"net/http"
	"time"
)

type HTTPClient = *http.Client

const fetchTimeout = time.Minute

func (Module) HTTPClient(
	dialer Dialer,
) HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: fetchTimeout,
	}
}
