package stockclient

import (
	"fmt"
	"net/http"
)

// HTTPError is returned when the service answers with a non-2xx status.
// Body holds the raw response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("stockclient: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
