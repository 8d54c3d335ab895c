// Package authsdk is a Go client for the leagueauth service.
//
// The SDKClient covers the unauthenticated surface (register, login, health,
// admin invite minting); a successful register or login returns a Session
// bound to the opaque session token, which covers the authenticated surface
// (me, logout).
//
//	client := authsdk.NewSDKClient("http://localhost:8080")
//	session, err := client.Login(ctx, "captain@example.com", "hunter2hunter2")
//	if err != nil {
//		// *authsdk.APIError carries the server's status and error code
//	}
//	account, err := session.Me(ctx)
//	_ = session.Logout(ctx)
package authsdk
