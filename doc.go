// Package medium provides a Go client for the Medium REST API with OAuth2
// authentication.
//
// # Overview
//
// The package manages the OAuth2 authorization-code and refresh-token
// exchanges, issues versioned requests against https://api.medium.com, and
// turns every response into either a decoded payload or a typed
// *errors.Error.
//
// # Quick Start
//
//	client, err := medium.NewClient(&medium.Config{
//		ClientID:     "your-client-id",
//		ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Authorization
//
// Send the user to the authorization page, then exchange the code Medium
// redirects back with:
//
//	authURL, err := client.GetAuthorizationURL("some-state", "https://example.com/callback",
//		[]types.Scope{types.ScopeBasicProfile, types.ScopePublishPost})
//
//	token, err := client.ExchangeAuthorizationCode(ctx, code, "https://example.com/callback")
//
// A successful exchange stores the access token on the client. Keep
// token.RefreshToken to obtain a new access token later with
// ExchangeRefreshToken. A previously issued token can be installed directly:
//
//	user, err := client.SetAccessToken(saved).GetUser(ctx)
//
// The client does not persist tokens.
//
// # Common Operations
//
//	posts, err := client.GetPostsForUser(ctx, &types.PostsRequest{UserID: user.ID})
//
//	post, err := client.CreatePost(ctx, &types.CreatePostRequest{
//		UserID:        user.ID,
//		Title:         "Hello",
//		ContentFormat: types.ContentFormatMarkdown,
//		Content:       "# Hello\n\nFirst post.",
//		PublishStatus: types.PublishStatusDraft,
//	})
//
// Only fields that are set are sent with CreatePost.
//
// # Error Handling
//
// Every call returns either a result or a *errors.Error. Its Code is the
// service's own error code, or errors.SentinelCode (-1) when the service did
// not supply one. Its Kind tells validation, parse, API, unexpected status and
// transport failures apart:
//
//	_, err := client.GetUser(ctx)
//	switch {
//	case errors.IsValidation(err):
//		// bad input, nothing was sent
//	case errors.IsAPI(err):
//		log.Printf("medium said %d", errors.CodeOf(err))
//	case errors.IsTransport(err):
//		// network failure or timeout
//	}
//
// Required inputs are checked before any request is built, and blank strings
// count as missing. Scopes, content formats, publish statuses and licenses
// Medium does not document are logged as warnings and sent as given; set
// Config.StrictValidation to reject them instead.
//
// # Timeouts and Concurrency
//
// Each request is bounded by Config.Timeout (5 seconds by default) and by the
// caller's context. Nothing is retried and redirects are not followed: a 3xx
// response is an unexpected status error. A Client may be shared between
// goroutines; the stored access token is replaced atomically and concurrent
// exchanges are last-writer-wins.
//
// # Logging
//
// Set Config.Logger to receive debug records for each request and token
// update. Tokens themselves are never logged.
package medium
