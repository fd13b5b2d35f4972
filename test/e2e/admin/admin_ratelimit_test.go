package admin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies the strict login limit with production
// defaults: five attempts per minute per address.
func TestLoginRateLimit(t *testing.T) {
	env := baseEnv()
	for _, k := range []string{"RATELIMIT_STRICT_REQUESTS", "RATELIMIT_STRICT_BURST"} {
		delete(env, k)
	}
	client := adminsdk.NewSDKClient(startAdmin(t, env))

	var limited bool
	for range 10 {
		_, err := client.Login(t.Context(), adminUsername, "wrong")
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}
	require.True(t, limited, "login should be rate limited")
}
