package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"ddp/internal/archive"
	"ddp/internal/export"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/providers"
	"ddp/internal/services"
	"ddp/internal/structures"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
)

const defaultUploadName = "upload.zip"

type ApiController struct {
	logger        providers.Logger
	service       services.DonationServiceInterface
	cache         providers.CacheProviderInterface
	compressor    export.CompressorInterface
	locale        locale.Locale
	maxUploadSize int64
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.DonationServiceInterface, cache providers.CacheProviderInterface, compressor export.CompressorInterface) *ApiController {
	l, err := locale.Parse(conf.Extraction.Locale)
	if err != nil {
		l = locale.DE
	}
	return &ApiController{
		logger:        logger,
		service:       service,
		cache:         cache,
		compressor:    compressor,
		locale:        l,
		maxUploadSize: int64(conf.WebServer.MaxUploadSize) << 20,
	}
}

type platformResponse struct {
	ID        extract.ID `json:"id"`
	Name      string     `json:"name"`
	Artifacts []string   `json:"artifacts"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, gson)
}

func writeRaw(w http.ResponseWriter, status int, gson []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func uploadName(r *http.Request) string {
	if name := r.URL.Query().Get("name"); name != "" {
		return name
	}
	return defaultUploadName
}

func (ac *ApiController) requestLocale(r *http.Request) (locale.Locale, error) {
	raw := r.URL.Query().Get("locale")
	if raw == "" {
		return ac.locale, nil
	}
	return locale.Parse(raw)
}

// readUpload returns the request body, or writes the error response and
// returns ok=false.
func (ac *ApiController) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, ac.maxUploadSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}
	if len(data) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

func cacheKey(l locale.Locale, name string, data []byte) string {
	return "extract:" + string(l) + ":" + name + ":" + strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Extract runs the full pipeline over the uploaded archive. Results are
// cached by locale, file name and content digest.
func (ac *ApiController) Extract(w http.ResponseWriter, r *http.Request) {
	l, err := ac.requestLocale(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	data, ok := ac.readUpload(w, r)
	if !ok {
		return
	}
	name := uploadName(r)
	key := cacheKey(l, name, data)

	if cached, ok := ac.cache.Get(key); ok {
		gson, err := ac.compressor.Decompress(cached)
		if err == nil {
			writeRaw(w, http.StatusOK, gson)
			return
		}
		ac.logger.Warnf(providers.TypePost, "Dropping unreadable cache entry %s: %s", key, err)
	}

	a, err := archive.FromBytes(name, data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, services.Invalid(name))
		return
	}
	defer a.Close()

	res, err := ac.service.Extract(r.Context(), a, l, nil)
	if err != nil {
		if errors.Is(err, services.ErrNotValid) {
			writeJSON(w, http.StatusUnprocessableEntity, ac.service.Classify(a))
			return
		}
		ac.logger.Errorf(providers.TypePost, "Extraction of %s failed: %s", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if packed, err := ac.compressor.Compress(gson); err == nil {
		ac.cache.Set(key, packed)
	}
	writeRaw(w, http.StatusOK, gson)
}

// Classify reports the platform and validity of the uploaded archive
// without extracting it.
func (ac *ApiController) Classify(w http.ResponseWriter, r *http.Request) {
	data, ok := ac.readUpload(w, r)
	if !ok {
		return
	}
	name := uploadName(r)

	a, err := archive.FromBytes(name, data)
	if err != nil {
		writeJSON(w, http.StatusOK, services.Invalid(name))
		return
	}
	defer a.Close()
	writeJSON(w, http.StatusOK, ac.service.Classify(a))
}

func (ac *ApiController) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms := extract.Platforms()
	resp := make([]platformResponse, 0, len(platforms))
	for _, p := range platforms {
		resp = append(resp, platformResponse{ID: p.ID, Name: p.Name, Artifacts: p.Keys()})
	}
	writeJSON(w, http.StatusOK, resp)
}
