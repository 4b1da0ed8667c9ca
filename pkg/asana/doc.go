// Package asana provides types, interfaces, and helpers for working with the
// Asana REST API.
//
// # Overview
//
// The asana package defines the domain types (e.g., Portfolio,
// ProjectMembership, Project, Workspace, User) and the interfaces for
// resource-oriented clients (e.g., PortfoliosClient,
// ProjectMembershipsClient). A concrete implementation of these clients is
// provided by the asanaclient package, which wires configuration, transport,
// and authentication. Most consumers should import asanaclient to construct
// a client and then interact with the resource client interfaces exposed
// here.
//
// Getting a client
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
//	  cli, err := asanaclient.NewWithToken(ctx, "https://app.asana.com/api/1.0", "my-pat")
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of portfolios
//	  portfolios, err := cli.Portfolios().List(ctx, &asana.PortfolioListRequest{
//	    Workspace: "12345",
//	    Owner:     "me",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = portfolios
//	}
//
// # Queries and pagination
//
// Use QueryParams to express common list options (limit, opt_fields,
// filters). List endpoints return one page plus an opaque continuation
// offset; the package provides helpers for iterating or collecting
// paginated results:
//
//	it := asana.NewPaginationIterator(ctx, cli.Portfolios(), "/portfolios", params)
//	for it.HasNext() {
//	  p, err := it.Next()
//	  if err != nil { break }
//	  _ = p
//	}
//
// or fetch all results at once:
//
//	all, err := asana.FetchAllPages(ctx, cli.Portfolios(), "/portfolios", params, nil)
//	if err != nil { /* handle error */ }
//	_ = all
//
// Iteration is strictly page-at-a-time: the next HTTP request is issued only
// once the current page's items are drained, so stopping early costs
// nothing.
//
// # Heterogeneous resources
//
// Endpoints whose items can be of more than one kind (a portfolio's items
// may be projects or nested portfolios) decode into GenericResource, a
// map-backed snapshot whose Get methods distinguish a field that is present
// with a null value from one that is absent from the snapshot altogether.
//
// # Errors
//
// API errors are represented by APIError and ResponseError. Helpers such as
// IsNotFound, IsUnauthorized, and IsRateLimited make it easy to branch on
// common cases. Omitting a required parameter fails locally with
// MissingParamError before any network call.
//
// # Interceptors and caching
//
// The package includes request/response interceptors (logging, auth
// headers, rate limiting) and a pluggable Cache abstraction with memory and
// NATS KV backends. The asanaclient package composes these pieces for a
// sensible default client; applications with advanced needs can use the
// primitives directly.
package asana
