package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/formatter"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/tasks"
	"github.com/desertthunder/moodboard/internal/web"
)

const maxImportBytes = 10 << 20

var contentTypes = map[string]string{
	".json": "application/json",
	".csv":  "text/csv; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
}

// BoardHandler serves the board page and JSON API. Implements [Handler].
type BoardHandler struct {
	engine *tasks.BoardEngine
	logger *log.Logger
	mux    *http.ServeMux
	routes []string
}

// NewBoardHandler creates a BoardHandler backed by engine.
func NewBoardHandler(engine *tasks.BoardEngine, logger *log.Logger) *BoardHandler {
	h := &BoardHandler{
		engine: engine,
		logger: shared.WithLogger(logger, "component", "http"),
		mux:    http.NewServeMux(),
	}

	h.route("GET /{$}", h.page)
	h.route("POST /items", h.addForm)
	h.route("POST /items/{id}/delete", h.deleteForm)
	h.route("POST /import", h.importForm)

	h.route("GET /api/items", h.listItems)
	h.route("POST /api/items", h.addItem)
	h.route("GET /api/items/{id}", h.getItem)
	h.route("DELETE /api/items/{id}", h.deleteItem)
	h.route("GET /api/classify", h.classify)
	h.route("GET /api/categories", h.listCategories)
	h.route("POST /api/categories", h.addCategory)
	h.route("GET /api/export", h.export)
	h.route("POST /api/import", h.importBoard)
	return h
}

func (h *BoardHandler) route(pattern string, fn http.HandlerFunc) {
	h.mux.HandleFunc(pattern, fn)
	h.routes = append(h.routes, pattern)
}

// Routes returns the method patterns this handler serves.
func (h *BoardHandler) Routes() []string { return h.routes }

func (h *BoardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

// NewRouter builds the application router: panic recovery, request logging and the board routes.
func NewRouter(engine *tasks.BoardEngine, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Recover(logger), Logging(logger))
	r.HandleFunc(http.MethodGet, "/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	r.Handler(NewBoardHandler(engine, logger))
	return r
}

type itemRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
}

type classifyResponse struct {
	URL        string `json:"url"`
	Provider   string `json:"provider"`
	Label      string `json:"label"`
	MediaID    string `json:"mediaId,omitempty"`
	Embeddable bool   `json:"embeddable"`
	Facebook   string `json:"facebookKind,omitempty"`
}

type importResponse struct {
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Categories int      `json:"categories"`
	Reasons    []string `json:"reasons,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *BoardHandler) page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "")
}

func (h *BoardHandler) renderPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	q := r.URL.Query()
	active := q.Get("category")
	if active == models.AllCategories {
		active = ""
	}
	query := q.Get("q")

	categories, err := h.engine.Categories()
	if err != nil {
		h.fail(w, err)
		return
	}
	items, err := h.engine.ListItems(tasks.ListOptions{Category: active, Query: query})
	if err != nil {
		h.fail(w, err)
		return
	}
	total := len(items)
	if active != "" || query != "" {
		all, err := h.engine.ListItems(tasks.ListOptions{})
		if err != nil {
			h.fail(w, err)
			return
		}
		total = len(all)
	}

	p := web.NewPage(categories, items, active, query, total)
	p.Error = errMsg
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
	}
	if err := web.RenderPage(w, p); err != nil {
		h.logger.Error("render failed", "error", err)
	}
}

func (h *BoardHandler) addForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, err.Error())
		return
	}
	_, err := h.engine.AddItem(tasks.AddItemParams{
		URL:      r.PostFormValue("url"),
		Title:    r.PostFormValue("title"),
		Notes:    r.PostFormValue("notes"),
		Category: r.PostFormValue("category"),
	})
	if err != nil {
		h.renderPage(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BoardHandler) deleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.RemoveItem(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BoardHandler) importForm(w http.ResponseWriter, r *http.Request) {
	data, err := h.readImport(w, r)
	if err != nil {
		h.renderPage(w, r, err.Error())
		return
	}
	if _, err := h.engine.Import(r.Context(), nil, data); err != nil {
		h.renderPage(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BoardHandler) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.engine.ListItems(tasks.ListOptions{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Provider: q.Get("provider"),
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	out := make([]models.BoardItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.BoardItem())
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *BoardHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}
	item, err := h.engine.AddItem(tasks.AddItemParams(req))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item.BoardItem())
}

func (h *BoardHandler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.engine.GetItem(r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item.BoardItem())
}

func (h *BoardHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.RemoveItem(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) classify(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		h.fail(w, fmt.Errorf("%w: url", shared.ErrMissingArgument))
		return
	}
	res := classify.Classify(raw)
	out := classifyResponse{
		URL:        raw,
		Provider:   res.Provider.String(),
		Label:      res.Provider.Label(),
		MediaID:    res.MediaID,
		Embeddable: res.Embeddable(),
	}
	if res.Facebook != nil {
		out.Facebook = string(res.Facebook.Kind)
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *BoardHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.engine.Categories()
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}

func (h *BoardHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}
	c, err := h.engine.AddCategory(req.Name)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"name": c.Name()})
}

func (h *BoardHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	data, err := h.engine.Export(format)
	if err != nil {
		h.fail(w, err)
		return
	}

	ext := formatter.Extension(format)
	w.Header().Set("Content-Type", contentTypes[ext])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="moodboard%s"`, ext))
	w.Write(data)
}

func (h *BoardHandler) importBoard(w http.ResponseWriter, r *http.Request) {
	data, err := h.readImport(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.engine.Import(r.Context(), nil, data)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, importResponse{
		Imported:   res.Imported,
		Skipped:    res.Skipped,
		Categories: res.Categories,
		Reasons:    res.Reasons,
	})
}

// readImport reads an export from a multipart "file" field or the raw body.
func (h *BoardHandler) readImport(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMissingArgument, err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(r.Body)
}

func (h *BoardHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *BoardHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	} else {
		h.logger.Debug("request rejected", "status", status, "error", err)
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, shared.ErrItemNotFound), errors.Is(err, shared.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrInvalidBoard),
		errors.Is(err, shared.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}
