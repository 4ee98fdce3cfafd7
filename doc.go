// Package pkgrewrite is the composition root for the manifest rewriter.
//
// It rewrites the package manifest produced by the sejong-buffer npm
// build before publishing: the "name" field is set to "sejong-buffer" and
// the "files" allow-list is removed. Every other field keeps its value
// and its position.
//
// The core (pkg/core) only knows about an ordered manifest and the rewrite
// rule. Reading, parsing and writing live in the filesystem adapter
// (pkg/adapters/fs), which picks a serializer from the file extension and
// replaces the file atomically by default.
//
// Usage:
//
//	svc, err := pkgrewrite.New(pkgrewrite.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	res, err := svc.Rewrite(ctx, "pkg/package.json")
//
// The update-package-json command wraps the same call for release scripts.
package pkgrewrite
