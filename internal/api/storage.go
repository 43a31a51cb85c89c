package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/JaimeStill/pacto/internal/contracts"
	"github.com/JaimeStill/pacto/pkg/handlers"
	"github.com/JaimeStill/pacto/pkg/routes"
	"github.com/JaimeStill/pacto/pkg/storage"
)

// storageHandler browses the stored contract and annex documents.
// Every key and prefix is confined to the contracts root.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	root        string
	maxListSize int32
}

func newStorageHandler(
	store storage.System,
	logger *slog.Logger,
	maxListSize int32,
) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		root:        contracts.BlobRoot + "/",
		maxListSize: maxListSize,
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Tag:    "storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list, Summary: "List stored documents"},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download, Summary: "Download a stored document"},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find, Summary: "Get stored document metadata"},
		},
	}
}

func (h *storageHandler) scoped(key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if !strings.HasPrefix(key, h.root) {
		return fmt.Errorf("%w: outside %s", storage.ErrInvalidKey, h.root)
	}
	return nil
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	prefix := q.Get("prefix")
	if prefix == "" {
		prefix = h.root
	}
	if err := h.scoped(prefix); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), prefix, q.Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.scoped(key); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	meta, err := h.store.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.scoped(key); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	if err := handlers.RespondAttachment(w, result.ContentType, path.Base(key), result.Body); err != nil {
		h.logger.Error("download stream failed", "key", key, "error", err)
	}
}
