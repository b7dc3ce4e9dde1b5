// Package pokeapi provides an HTTP client for the public PokéAPI.
//
// # Overview
//
// The client issues the two read requests pokesearch needs: a paged listing
// of the pokemon collection and a single pokemon detail lookup. It handles
// HTTP communication, JSON decoding, and a light shape check of each payload.
//
// # Architecture
//
//   - client.go: HTTP client, URL construction, error types
//   - types.go: Data structures mirroring the PokéAPI schema
//
// # Client Usage
//
//	client, err := pokeapi.NewClient(pokeapi.DefaultBaseURL, 10*time.Second, logger)
//	if err != nil {
//		return err
//	}
//
//	page, err := client.FetchPage(ctx, 20, 0)
//	detail, err := client.FetchDetail(ctx, "ditto")
//	detail, err = client.FetchDetailURL(ctx, page.Results[0].URL)
//
// # API Endpoints
//
//   - GET <base>/pokemon?limit=<n>&offset=<n>: {count, next, previous, results: [{name, url}]}
//   - GET <base>/pokemon/<name-or-id>: {name, abilities: [{ability: {name}}], ...}
//
// FetchDetail path-escapes the name into a single segment under pokemon/.
// FetchDetailURL follows the absolute URL carried by a list entry and rejects
// anything off the configured host or outside <base>/pokemon/ (ErrForeignURL).
//
// # Error Handling
//
// Every failure is returned as an error; nothing is retried or cached:
//
//   - "execute request: ...": transport failure (DNS, refused, timeout)
//   - *StatusError: any status outside 2xx; 404 also matches ErrNotFound
//   - "decode response: ...": malformed JSON or a payload failing the shape
//     check (list without results, detail without name); matches ErrShape
//
// # Thread Safety
//
// Client is safe for concurrent use; the aggregator fans detail requests out
// over a single Client.
package pokeapi
