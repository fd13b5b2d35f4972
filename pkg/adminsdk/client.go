package adminsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the clinic admin service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes a Session refuse calls its token lacks the scopes
	// for, without asking the server. Turn it off to exercise the server
	// side checks. Default: true
	CheckScopes bool
}

// NewSDKClient creates a client with scope checking enabled and a 10 second
// transport timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}
