// Package integration contains the Integration bounded context.
// This context manages connecting merchants' e-commerce platforms.
//
// Key concepts:
//   - PlatformAuthorizer: Port for building platform OAuth authorization URLs
//     and verifying callbacks (Shopify today)
//   - PendingAuthorization: Value object tying a CSRF state token to a session
//   - OAuthStateStore: Port for short-lived pending authorizations
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
