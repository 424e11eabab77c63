// Package pkg provides the libraries behind the permute CLI.
//
// # Overview
//
// The pkg directory is organized around one core package and the
// infrastructure the CLI and HTTP server share:
//
//  1. [permute] - Lazy permutation, combination and arrangement generators
//  2. [prefixtree] - Prefix trees of enumerations, exported to DOT and SVG
//  3. [cache] - On-disk cache for rendered SVG trees
//  4. [errors] - Structured error codes shared by the CLI and HTTP API
//  5. [observability] - Hooks for enumeration and HTTP request events
//  6. [buildinfo] - Version information set at build time
//
// # Quick Start
//
// Enumerate every pair of four elements, one at a time:
//
//	import "github.com/matzehuels/permute/pkg/permute"
//
//	pairs, err := permute.Combinations([]string{"a", "b", "c", "d"}, 2)
//	if err != nil {
//	    return err
//	}
//	for pair := range pairs {
//	    fmt.Println(pair)
//	}
//
// Generators never materialize the full result, so enumerations far larger
// than memory can be consumed incrementally or cut short with [permute.Take].
//
// [permute]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/permute
// [prefixtree]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/prefixtree
// [cache]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/buildinfo
// [permute.Take]: https://pkg.go.dev/github.com/matzehuels/permute/pkg/permute#Take
package pkg
