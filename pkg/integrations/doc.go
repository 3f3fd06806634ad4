// Package integrations provides the HTTP plumbing for package registry
// clients.
//
// [Client] wraps an http.Client with default headers, status mapping,
// retries and response caching through any [cache.Cache]. Registry clients
// embed it; phpgen currently talks to one registry:
//
//   - [packagist]: live metadata for Composer packages (`phpgen deps info`)
//
// The dependency catalog itself is compiled in; registry lookups are an
// opt-in enrichment and never needed to fill the project form.
//
// # Errors
//
// 404 responses map to [ErrNotFound]. Transport failures and 5xx responses
// map to [ErrNetwork] wrapped with [cache.Retryable], so [Client.Cached]
// retries them with backoff.
//
// [packagist]: github.com/matzehuels/phpgen/pkg/integrations/packagist
// [cache.Cache]: github.com/matzehuels/phpgen/pkg/cache.Cache
// [cache.Retryable]: github.com/matzehuels/phpgen/pkg/cache.Retryable
package integrations
