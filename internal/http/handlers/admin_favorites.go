package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"wasup-chucks/internal/favorites"
	"wasup-chucks/internal/logging"
)

const maxFavoritesBody = 4 << 10

// FavoritesEditor is the persisted favorites list the admin endpoints edit.
type FavoritesEditor interface {
	Load() (favorites.Set, error)
	ToggleItem(name string) (bool, error)
	AddKeyword(keyword string) error
	RemoveKeyword(keyword string) error
}

type favoritesView struct {
	Items    []string `json:"items"`
	Keywords []string `json:"keywords"`
}

type toggleRequest struct {
	Name string `json:"name"`
}

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

// WithFavorites enables the favorites endpoints backed by editor.
func (h *AdminHandler) WithFavorites(editor FavoritesEditor) *AdminHandler {
	h.favorites = editor
	return h
}

// ServesFavorites reports whether favorites endpoints should be mounted.
func (h *AdminHandler) ServesFavorites() bool {
	return h != nil && h.favorites != nil
}

// ListFavorites returns the stored item names and keywords.
func (h *AdminHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodGet) || !h.authorized(w, r) || !h.favoritesReady(w, r) {
		return
	}
	h.writeFavorites(w, r, requestLogger(r, h.logger))
}

// ToggleFavoriteItem flips an exact item name in or out of the favorites.
func (h *AdminHandler) ToggleFavoriteItem(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodPost) || !h.authorized(w, r) || !h.favoritesReady(w, r) {
		return
	}
	logger := requestLogger(r, h.logger)

	var req toggleRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required", logger)
		return
	}
	added, err := h.favorites.ToggleItem(name)
	if err != nil {
		logging.Error(logger, "favorite toggle failed", err, slog.String("name", name))
		writeError(w, r, http.StatusInternalServerError, "failed to save favorites", logger)
		return
	}
	h.followUp(r.Context(), logger, "favorites")

	logging.Info(logger, "favorite item toggled", slog.String("name", name), slog.Bool("favorite", added))
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "favorite": added}, logger)
}

// AddFavoriteKeyword stores a keyword matched case-insensitively against item names.
func (h *AdminHandler) AddFavoriteKeyword(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodPost) || !h.authorized(w, r) || !h.favoritesReady(w, r) {
		return
	}
	logger := requestLogger(r, h.logger)

	var req keywordRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		writeError(w, r, http.StatusBadRequest, "keyword is required", logger)
		return
	}
	if err := h.favorites.AddKeyword(keyword); err != nil {
		logging.Error(logger, "favorite keyword add failed", err, slog.String("keyword", keyword))
		writeError(w, r, http.StatusInternalServerError, "failed to save favorites", logger)
		return
	}
	h.followUp(r.Context(), logger, "favorites")
	h.writeFavorites(w, r, logger)
}

// RemoveFavoriteKeyword deletes the keyword named in the path.
func (h *AdminHandler) RemoveFavoriteKeyword(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodDelete) || !h.authorized(w, r) || !h.favoritesReady(w, r) {
		return
	}
	logger := requestLogger(r, h.logger)

	keyword := strings.TrimSpace(r.PathValue("keyword"))
	if keyword == "" {
		writeError(w, r, http.StatusBadRequest, "keyword is required", logger)
		return
	}
	if err := h.favorites.RemoveKeyword(keyword); err != nil {
		logging.Error(logger, "favorite keyword remove failed", err, slog.String("keyword", keyword))
		writeError(w, r, http.StatusInternalServerError, "failed to save favorites", logger)
		return
	}
	h.followUp(r.Context(), logger, "favorites")
	h.writeFavorites(w, r, logger)
}

func (h *AdminHandler) favoritesReady(w http.ResponseWriter, r *http.Request) bool {
	if h.favorites != nil {
		return true
	}
	writeError(w, r, http.StatusServiceUnavailable, "favorites not configured", h.logger)
	return false
}

func (h *AdminHandler) writeFavorites(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	set, err := h.favorites.Load()
	if err != nil {
		logging.Error(logger, "favorites load failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load favorites", logger)
		return
	}
	writeJSON(w, http.StatusOK, favoritesView{Items: set.SortedItems(), Keywords: set.SortedKeywords()}, logger)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any, logger *slog.Logger) bool {
	body := http.MaxBytesReader(w, r.Body, maxFavoritesBody)
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, r, status, "invalid request body", logger)
		return false
	}
	return true
}
