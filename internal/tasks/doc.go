// Package tasks orchestrates board operations with real-time progress reporting.
//
// # Core Operations
//
// [BoardEngine] is the application service shared by the CLI, the HTTP server and the terminal browser:
//
//  1. Items: [BoardEngine.AddItem] classifies a pasted URL and saves it; [BoardEngine.ListItems] filters by
//     category and search query, newest first; [BoardEngine.RemoveItem] deletes.
//
//  2. Categories: [BoardEngine.Categories] merges stored names with categories only items mention;
//     [BoardEngine.AddCategory] rejects duplicates.
//
//  3. Transfer: [BoardEngine.Export] renders the board in any formatter format; [BoardEngine.Import]
//     replaces the board from an export, re-classifying every item; [BoardEngine.BulkExport] writes one
//     file per category with a worker pool and a manifest.
//
//  4. [BoardEngine.Reset] clears everything and restores the default categories.
//
// # Progress Reporting
//
// Long-running operations take a ProgressUpdate channel. Updates use select with default to prevent blocking,
// so a nil or full channel never stalls the operation.
package tasks
