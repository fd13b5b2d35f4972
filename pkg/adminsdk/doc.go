/*
Package adminsdk is a typed client for the clinic admin service.

# SDKClient vs Session

SDKClient covers the public endpoints and logs users in. A Session carries
the bearer token of one login and covers everything else:

	client := adminsdk.NewSDKClient("http://localhost:8080")

	health, err := client.GetReadiness(ctx)

	session, err := client.Login(ctx, "admin", password)
	roles, err := session.ListRoles(ctx)       // admin:read
	err = session.AssignMenu(ctx, roleID, 7)   // admin:write

Sessions do not refresh. Once ExpiresAt has passed every call fails with
ErrSessionExpired and the user logs in again.

# Errors

Failed calls return an *APIError parsed from the response envelope:

	var apiErr *adminsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == httpx.CodeConflict {
		// ...
	}

# Menu permission editor

EditorBackend adapts a Session to menuperm.Backend:

	ed := menuperm.NewEditor(adminsdk.EditorBackend{Session: session})
*/
package adminsdk
