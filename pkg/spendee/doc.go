// Package spendee is a client for the private HTTP API behind the Spendee
// web app.
//
// A Client owns one Session. Login stores the access token in it and every
// non-public call attaches that token; calls made without a usable token
// fail with ErrNotAuthenticated and never reach the network.
//
//	c, err := spendee.NewClient(cfg, log)
//	if err != nil { ... }
//	if _, err := c.Login(ctx, models.Credentials{Email: email, Password: password}); err != nil { ... }
//	wallets, err := c.Wallets(ctx)
//
// Errors are one of *NetworkError, *APIError, *DecodeError, *ValidationError
// or ErrNotAuthenticated. Nothing is retried.
package spendee
