package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stock-import/internal/config"
	"stock-import/internal/stockimport/model"
	"stock-import/internal/stockimport/service"
)

// Catalog это хранилище товаров и точек, с которым работает движок импорта.
type Catalog interface {
	Products(ctx context.Context) ([]model.Product, error)
	Locations(ctx context.Context) ([]model.Location, error)
	SaveLocation(ctx context.Context, l model.Location) error
	Apply(ctx context.Context, changes []model.Change) error
}

// Handler даёт HTTP-обвязку вокруг сервиса импорта.
// Все изменения каталога идут под одной блокировкой: чтение, сверка и запись
// не должны пересекаться с параллельным импортом.
type Handler struct {
	store Catalog
	cfg   config.Config
	log   zerolog.Logger
	mu    sync.Mutex
}

func New(cfg config.Config, store Catalog, logger zerolog.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, log: logger}
}

func (h *Handler) maxMemory() int64 {
	return int64(h.cfg.MaxUploadMB) << 20
}

type importResponse struct {
	model.ImportResult
	Changes []model.Change `json:"changes"`
	DryRun  bool           `json:"dryRun"`
}

// Preview разбирает файл без записи и отдаёт первые строки, счётчики и журнал.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	text, name, err := readUpload(r, h.maxMemory())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad upload: "+err.Error())
		return
	}
	locs, err := h.store.Locations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load locations")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}

	res := service.Parse(text, service.ParseOptions{
		Locations:        locs,
		ManualLocationID: r.FormValue("location_id"),
		StrictSizes:      toBool(r.FormValue("strict"), false),
		PreviewRows:      atoi(r.FormValue("preview_rows"), h.cfg.PreviewRows),
	})
	log.Debug().
		Str("file", name).
		Int("rows", len(res.FullData)).
		Int("skipped", res.SkippedCount).
		Str("error", res.Error).
		Msg("preview done")

	writeJSON(w, r, http.StatusOK, res)
}

// Import разбирает и сверяет файл; изменения пишутся одной транзакцией, если это не dry_run.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := zerolog.Ctx(r.Context())

	text, name, err := readUpload(r, h.maxMemory())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad upload: "+err.Error())
		return
	}
	target := r.FormValue("location_id")
	zeroFill := toBool(r.FormValue("zero_fill"), false)
	dryRun := toBool(r.FormValue("dry_run"), false)

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	locs, err := h.store.Locations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load locations")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}
	catalog, err := h.store.Products(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load products")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}

	rec := service.Import(text, catalog, service.ImportOptions{
		Locations:        locs,
		TargetLocationID: target,
		ZeroNonExisting:  zeroFill,
	})
	if !dryRun {
		if err := h.store.Apply(ctx, rec.Changes); err != nil {
			log.Error().Err(err).Int("changes", len(rec.Changes)).Msg("apply changes")
			writeError(w, r, http.StatusInternalServerError, "storage error")
			return
		}
	}

	changes := rec.Changes
	if changes == nil {
		changes = []model.Change{}
	}
	res := rec.Result
	if res.Logs == nil {
		res.Logs = []model.LogItem{}
	}

	log.Info().
		Str("file", name).
		Str("location", target).
		Bool("zero_fill", zeroFill).
		Bool("dry_run", dryRun).
		Int("imported", res.ImportedCount).
		Int("skipped", res.SkippedCount).
		Int("new", res.NewItemsCount).
		Int("updated", res.UpdatedItemsCount).
		Int("zeroed", res.ZeroedItemsCount).
		Dur("elapsed", time.Since(start)).
		Msg("import done")

	writeJSON(w, r, http.StatusOK, importResponse{ImportResult: res, Changes: changes, DryRun: dryRun})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.Products(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load products")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}
	out := make([]model.Product, 0, len(all))
	loc := r.URL.Query().Get("location_id")
	for _, p := range all {
		if loc == "" || p.LocationID == loc {
			out = append(out, p)
		}
	}
	writeJSON(w, r, http.StatusOK, out)
}

// AddProduct добавляет позицию вручную, количество прибавляется к существующей позиции.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	catalog, err := h.store.Products(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("load products")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}
	_, ch, err := service.AddProduct(catalog, p)
	if errors.Is(err, service.ErrInvalidProduct) {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.store.Apply(ctx, []model.Change{ch}); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("apply product")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}

	status := http.StatusOK
	if ch.Kind == model.ChangeInsert {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, ch.Product)
}

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.store.Locations(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load locations")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}
	if locs == nil {
		locs = []model.Location{}
	}
	writeJSON(w, r, http.StatusOK, locs)
}

func (h *Handler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	var l model.Location
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "location name is required")
		return
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.SaveLocation(r.Context(), l); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("save location")
		writeError(w, r, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, r, http.StatusCreated, l)
}

type restoreResponse struct {
	Kind     model.DataKind `json:"kind"`
	Restored int            `json:"restored"`
	Skipped  int            `json:"skipped"`
}

// Restore загружает JSON-бэкап; тип содержимого определяется по полям.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	kind, err := service.DetectDataKind(data)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	resp := restoreResponse{Kind: kind}
	switch kind {
	case model.DataInventory:
		var (
			items   []model.Product
			decoded []json.RawMessage
		)
		if err := json.Unmarshal(data, &decoded); err != nil {
			writeError(w, r, http.StatusBadRequest, "bad inventory: "+err.Error())
			return
		}
		// позиция с неизвестным объёмом или битым полем не валит весь бэкап
		for _, raw := range decoded {
			var p model.Product
			if err := json.Unmarshal(raw, &p); err != nil {
				resp.Skipped++
				continue
			}
			items = append(items, p)
		}
		catalog, err := h.store.Products(ctx)
		if err != nil {
			log.Error().Err(err).Msg("load products")
			writeError(w, r, http.StatusInternalServerError, "storage error")
			return
		}
		changes, skipped := service.RestoreProducts(catalog, items)
		if err := h.store.Apply(ctx, changes); err != nil {
			log.Error().Err(err).Msg("restore inventory")
			writeError(w, r, http.StatusInternalServerError, "storage error")
			return
		}
		resp.Skipped += skipped
		resp.Restored = len(items) - skipped
	case model.DataLocations:
		var decoded []json.RawMessage
		if err := json.Unmarshal(data, &decoded); err != nil {
			writeError(w, r, http.StatusBadRequest, "bad locations: "+err.Error())
			return
		}
		for _, raw := range decoded {
			var l model.Location
			if err := json.Unmarshal(raw, &l); err != nil || l.ID == "" || strings.TrimSpace(l.Name) == "" {
				resp.Skipped++
				continue
			}
			if err := h.store.SaveLocation(ctx, l); err != nil {
				log.Error().Err(err).Msg("restore locations")
				writeError(w, r, http.StatusInternalServerError, "storage error")
				return
			}
			resp.Restored++
		}
	case model.DataSales:
		writeError(w, r, http.StatusUnprocessableEntity, "sales backups are not supported")
		return
	default:
		writeError(w, r, http.StatusUnprocessableEntity, "unrecognized backup format")
		return
	}

	log.Info().Str("kind", string(kind)).Int("restored", resp.Restored).Int("skipped", resp.Skipped).Msg("restore done")
	writeJSON(w, r, http.StatusOK, resp)
}
