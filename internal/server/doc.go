// Package server provides HTTP routing, middleware and the moodboard handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /api/items"), so one path can
// serve several methods and unmatched methods get a 405.
//
// # Board Handler
//
// [BoardHandler] serves the board page and a small JSON API on top of tasks.BoardEngine:
//
//	GET    /                   board page, filtered by ?category= and ?q=
//	POST   /items              add an item from the page form
//	POST   /items/{id}/delete  delete an item from the page form
//	POST   /import             replace the board from an uploaded export
//	GET    /api/items          list items (?category=, ?q=, ?provider=)
//	POST   /api/items          add an item
//	GET    /api/items/{id}     fetch an item
//	DELETE /api/items/{id}     delete an item
//	GET    /api/classify       classify ?url=
//	GET    /api/categories     list categories
//	POST   /api/categories     add a category
//	GET    /api/export         download the board (?format=json|csv|markdown|txt)
//	POST   /api/import         replace the board from a JSON export
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
