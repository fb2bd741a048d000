// Package models defines domain entities and persistence interfaces for the moodboard.
//
// The package contains three groups of types:
//
// 1. Persistent entities implementing [Model]:
//   - [Item] : a saved link with its classified provider, title, notes and category
//   - [Category] : a named room/grouping items are filed under
//
// 2. Board interchange types:
//   - [Board] : the JSON import/export document ({categories, items})
//   - [BoardItem] : one exported item, with addedAt in unix milliseconds
//
// 3. Embed vocabulary shared by the classifier, player adapters and lifecycle coordinator:
//   - [Provider] : closed set of content providers
//   - [MountPoint] : opaque identity of the on-screen region an embed is attached to
//
// The Repository[T] interface defines standard CRUD operations for database access.
package models
