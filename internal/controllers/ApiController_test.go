package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ddp/internal/archive"
	"ddp/internal/detect"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/providers"
	"ddp/internal/services"
	"ddp/internal/structures"
	"ddp/internal/table"
	"ddp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mocks (scoped to controller tests) ---

type mockService struct {
	classification services.Classification
	result         *services.Result
	err            error
	extractCalls   int
	locales        []locale.Locale
	inFlight       int64
}

func (m *mockService) Classify(a *archive.Archive) services.Classification {
	c := m.classification
	c.File = a.Name()
	return c
}

func (m *mockService) Extract(_ context.Context, _ *archive.Archive, l locale.Locale, _ func(services.Update)) (*services.Result, error) {
	m.extractCalls++
	m.locales = append(m.locales, l)
	return m.result, m.err
}

func (m *mockService) InFlight() int64 { return m.inFlight }

// --- helpers ---

func testConfig() *structures.Config {
	return &structures.Config{
		Extraction: structures.ExtractionConfig{Locale: "de"},
		WebServer:  structures.Server{MaxUploadSize: 1},
	}
}

func newTestController(svc *mockService, cache providers.CacheProviderInterface) *ApiController {
	return NewApiController(testConfig(), &testutil.MockLogger{}, svc, cache, &testutil.MockCompressor{})
}

func sampleResult() *services.Result {
	t := table.New("liked_posts", "Likes", "Date", "Count")
	t.Append("14-11-2023", 3)
	return &services.Result{RunID: "run-1", File: "instagram-x.zip", Platform: extract.Instagram, Locale: locale.EN, Tables: []*table.Table{t}}
}

func zipBody(t *testing.T) []byte {
	return testutil.BuildZip(t, testutil.Entry{Name: "ads_information/a.json", Body: `{}`})
}

func post(ac http.HandlerFunc, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	ac(rr, req)
	return rr
}

// --- Extract tests ---

func TestExtract_ReturnsTables(t *testing.T) {
	svc := &mockService{result: sampleResult()}
	ac := newTestController(svc, testutil.NewMockCache())

	rr := post(ac.Extract, "/extract?locale=en&name=instagram-x.zip", zipBody(t))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp["run_id"])
	assert.Equal(t, "instagram", resp["platform"])
	assert.Len(t, resp["tables"], 1)
	assert.Equal(t, []locale.Locale{locale.EN}, svc.locales)
}

func TestExtract_DefaultLocale(t *testing.T) {
	svc := &mockService{result: sampleResult()}
	ac := newTestController(svc, testutil.NewMockCache())

	post(ac.Extract, "/extract", zipBody(t))
	assert.Equal(t, []locale.Locale{locale.DE}, svc.locales)
}

func TestExtract_CacheHit_ServiceNotCalled(t *testing.T) {
	svc := &mockService{result: sampleResult()}
	cache := testutil.NewMockCache()
	ac := newTestController(svc, cache)
	body := zipBody(t)

	first := post(ac.Extract, "/extract?locale=nl", body)
	second := post(ac.Extract, "/extract?locale=nl", body)

	assert.Equal(t, 1, svc.extractCalls)
	assert.Len(t, cache.Data, 1)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestExtract_CacheKeyIncludesLocale(t *testing.T) {
	svc := &mockService{result: sampleResult()}
	cache := testutil.NewMockCache()
	ac := newTestController(svc, cache)
	body := zipBody(t)

	post(ac.Extract, "/extract?locale=nl", body)
	post(ac.Extract, "/extract?locale=en", body)

	assert.Equal(t, 2, svc.extractCalls)
	assert.Len(t, cache.Data, 2)
}

func TestExtract_UnreadableCacheEntry(t *testing.T) {
	svc := &mockService{result: sampleResult()}
	cache := testutil.NewMockCache()
	body := zipBody(t)
	cache.Set(cacheKey(locale.DE, defaultUploadName, body), []byte("junk"))

	comp := &testutil.MockCompressor{DecompressFn: func([]byte) ([]byte, error) {
		return nil, assert.AnError
	}}
	ac := NewApiController(testConfig(), &testutil.MockLogger{}, svc, cache, comp)

	rr := post(ac.Extract, "/extract", body)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, svc.extractCalls)
}

func TestExtract_NotAZip(t *testing.T) {
	svc := &mockService{}
	ac := newTestController(svc, testutil.NewMockCache())

	rr := post(ac.Extract, "/extract?name=notes.zip", []byte("plain text"))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"file":"notes.zip","platform":"unknown","status":"invalid_file"}`, rr.Body.String())
	assert.Zero(t, svc.extractCalls)
}

func TestExtract_NotValid(t *testing.T) {
	svc := &mockService{
		err:            services.ErrNotValid,
		classification: services.Classification{Platform: extract.Unknown, Outcome: detect.NotPlatform, Status: "invalid_no_ddp"},
	}
	cache := testutil.NewMockCache()
	ac := newTestController(svc, cache)

	rr := post(ac.Extract, "/extract?name=holiday.zip", zipBody(t))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `"invalid_no_ddp"`)
	assert.Empty(t, cache.Data)
}

func TestExtract_ServiceFailure(t *testing.T) {
	svc := &mockService{err: context.DeadlineExceeded}
	ac := newTestController(svc, testutil.NewMockCache())

	rr := post(ac.Extract, "/extract", zipBody(t))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestExtract_BadLocale(t *testing.T) {
	svc := &mockService{}
	ac := newTestController(svc, testutil.NewMockCache())

	rr := post(ac.Extract, "/extract?locale=!!", zipBody(t))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExtract_EmptyBody(t *testing.T) {
	ac := newTestController(&mockService{}, testutil.NewMockCache())

	rr := post(ac.Extract, "/extract", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExtract_OversizedBody(t *testing.T) {
	ac := newTestController(&mockService{}, testutil.NewMockCache())

	big := []byte(strings.Repeat("x", 1<<20+1))
	rr := post(ac.Extract, "/extract", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

// --- Classify / platforms ---

func TestClassify_Valid(t *testing.T) {
	svc := &mockService{classification: services.Classification{Platform: extract.Instagram, Outcome: detect.Valid, Status: "valid"}}
	ac := newTestController(svc, testutil.NewMockCache())

	rr := post(ac.Classify, "/classify?name=instagram-x.zip", zipBody(t))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"file":"instagram-x.zip","platform":"instagram","status":"valid"}`, rr.Body.String())
	assert.Zero(t, svc.extractCalls)
}

func TestClassify_NotAZip(t *testing.T) {
	ac := newTestController(&mockService{}, testutil.NewMockCache())

	rr := post(ac.Classify, "/classify", []byte("nope"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"invalid_file"`)
}

func TestGetPlatforms(t *testing.T) {
	ac := newTestController(&mockService{}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/platforms", nil)
	rr := httptest.NewRecorder()
	ac.GetPlatforms(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []platformResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, extract.Instagram, resp[0].ID)
	assert.Equal(t, "ads_clicked", resp[0].Artifacts[0])
	assert.Equal(t, extract.LinkedIn, resp[1].ID)
	assert.Equal(t, extract.YouTube, resp[2].ID)
}

func TestNewApiController_InvalidConfiguredLocale(t *testing.T) {
	conf := testConfig()
	conf.Extraction.Locale = "!!"
	ac := NewApiController(conf, &testutil.MockLogger{}, &mockService{}, testutil.NewMockCache(), &testutil.MockCompressor{})
	assert.Equal(t, locale.DE, ac.locale)
}
