// Package workspace provides the file service behind the editor shell.
//
// This package is organized into specialized modules:
//   - classify: Extension to language / binary disposition tables
//   - tree: Recursive directory enumeration into flat entries
//   - content: Whole-file reads, base64 for binary media, strict UTF-8 for text
//   - mutate: Write, create file, create directory and delete
//   - inspect: MIME, charset and linguist metadata for a single path
//
// Error shapes:
//   - Enumeration, read and inspect failures are *ReadError (bare message)
//   - Mutation failures are *OperationError (message plus categorical code)
//
// Every call is self-contained. The service holds no mutable state, so a
// single *Service may be shared across goroutines; the filesystem is the only
// point of contention and concurrent writers to one path race there.
//
// Example Usage:
//
//	svc := workspace.New(workspace.Options{Logger: logger})
//	entries, err := svc.ListTree(ctx, "/home/me/project")
package workspace
