// Package asanaclient provides the primary entry point for constructing an
// API client that implements the asana.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the asana package. Most
// applications should import asanaclient to build a client, then use the
// returned asana.Client to access resource-specific clients, for example
// Portfolios(), ProjectMemberships(), Users(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/taskwire-io/asana/pkg/asana"
//	  "github.com/taskwire-io/asana/pkg/asanaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: a personal access token.
//	  cli, err := asanaclient.NewWithToken(ctx, "1/1234:abcd...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with full configuration:
//	  cli, err = asanaclient.New(ctx, &asana.Config{
//	    AccessToken: "1/1234:abcd...",
//	    RetryMax:    3,
//	  })
//
//	  // Or with OAuth2 refresh-token credentials. The token endpoint
//	  // defaults to the well-known OAuth URL and may be overridden via
//	  // Config.TokenURL.
//	  cli, err = asanaclient.NewWithOAuth(ctx, "client-id", "client-secret", "refresh-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the asana.Client interface
//	  me, err := cli.Me(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = me
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken,
// NewWithOAuth, and NewWithEndpoint that wrap New with the appropriate
// configuration.
package asanaclient
