package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ddp/internal/di"
	"ddp/internal/export"
	"ddp/internal/pipeline"
	"ddp/internal/services"
	"ddp/internal/structures"
	"ddp/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const likedPosts = `{"likes_media_likes":[{"string_list_data":[{"timestamp":1700000000}]}]}`

type stubRunner struct {
	ran bool
}

func (s *stubRunner) Run(_ context.Context) error {
	s.ran = true
	return nil
}

type harness struct {
	env    *env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	files  export.FileManagerInterface
	app    *stubRunner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conf := &structures.Config{
		Extraction: structures.ExtractionConfig{
			Locale:      "en",
			UTCOffset:   time.Hour,
			SessionGap:  time.Minute,
			SessionTail: 30 * time.Second,
		},
		Output: structures.OutputConfig{Dir: filepath.Join(t.TempDir(), "out")},
	}
	logger := &testutil.MockLogger{}
	driver := pipeline.NewDriver(conf, logger, testutil.NewMockMetrics())
	svc := services.NewDonationService(conf, logger, driver, nil)
	files := export.NewFileManager(conf, &testutil.MockCompressor{}, logger)

	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, files: files, app: &stubRunner{}}
	h.env = &env{
		globals: &GlobalFlags{},
		version: "test",
		stdout:  h.stdout,
		stderr:  h.stderr,
		newToolkit: func(*structures.CliFlags) (*di.Toolkit, error) {
			return &di.Toolkit{Config: conf, Logger: logger, Service: svc, Files: files}, nil
		},
		newApp: func(*structures.CliFlags) (runner, error) {
			return h.app, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	parser, _ := buildParser(h.env)
	_, err := parser.ParseArgs(args)
	return err
}

func instagramArchive(t *testing.T) string {
	return testutil.WriteZip(t, t.TempDir(), "instagram-donor.zip",
		testutil.Entry{Name: "ads_information/ads_and_topics/ads_viewed.json", Body: `{"impressions_history_ads_seen":[]}`},
		testutil.Entry{Name: "your_instagram_activity/likes/liked_posts.json", Body: likedPosts},
	)
}

func TestRunWithArgs_Version(t *testing.T) {
	assert.NoError(t, RunWithArgs("1.2.3", []string{"--version"}))
}

func TestRunWithArgs_Help(t *testing.T) {
	assert.NoError(t, RunWithArgs("1.2.3", []string{"--help"}))
}

func TestBuildParser_Commands(t *testing.T) {
	h := newHarness(t)
	parser, cmds := buildParser(h.env)

	for _, name := range []string{"extract", "classify", "platforms", "serve", "show"} {
		assert.NotNil(t, parser.Find(name), name)
	}
	assert.Same(t, h.env, cmds.Extract.env)
	assert.Same(t, h.env, cmds.Show.env)
}

func TestExtract_StoresDonation(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("extract", "--session", "s1", instagramArchive(t)))
	assert.Contains(t, h.stdout.String(), "(liked_posts)")
	assert.Contains(t, h.stdout.String(), "14-11-2023")
	assert.Contains(t, h.stdout.String(), "Donation s1-instagram-data-donation stored in")

	data, err := h.files.Load("s1-instagram-data-donation")
	require.NoError(t, err)
	var tables []map[string]any
	require.NoError(t, json.Unmarshal(data, &tables))
	assert.NotEmpty(t, tables)
}

func TestExtract_Declined(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("extract", "--session", "s2", "--decline", instagramArchive(t)))

	data, err := h.files.Load("s2-instagram-data-donation")
	require.NoError(t, err)
	assert.JSONEq(t, string(export.Declined), string(data))
}

func TestExtract_DryRun(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("extract", "--session", "s3", "--dry-run", instagramArchive(t)))
	assert.Contains(t, h.stdout.String(), "liked_posts")
	assert.NotContains(t, h.stdout.String(), "stored in")

	_, err := h.files.Load("s3-instagram-data-donation")
	assert.Error(t, err)
}

func TestExtract_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--json", "extract", "--session", "s4", "--dry-run", instagramArchive(t)))
	var tables []map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &tables))
	assert.Equal(t, "ads_clicked", tables[0]["key"])
}

func TestExtract_InvalidFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	err := h.run("extract", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_file")
}

func TestExtract_BadLocale(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("extract", "--locale", "fr", instagramArchive(t)))
}

func TestClassify(t *testing.T) {
	h := newHarness(t)
	broken := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))

	require.NoError(t, h.run("--json", "classify", instagramArchive(t), broken))

	var out []services.Classification
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "valid", out[0].Status)
	assert.Equal(t, "invalid_file", out[1].Status)
	assert.Equal(t, "broken.zip", out[1].File)
}

func TestClassify_MissingFile(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("classify", filepath.Join(t.TempDir(), "absent.zip")))
}

func TestPlatforms(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("platforms"))
	out := h.stdout.String()
	assert.Contains(t, out, "instagram")
	assert.Contains(t, out, "LinkedIn")
	assert.Contains(t, out, "youtube")
}

func TestPlatforms_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--json", "platforms"))
	var out []platformJSON
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "instagram", string(out[0].ID))
	assert.Contains(t, out[0].Artifacts, "liked_posts")
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	_, err := h.files.Save("s5-youtube-data-donation", []byte(`{"a":1}`))
	require.NoError(t, err)

	require.NoError(t, h.run("show", "s5-youtube-data-donation"))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", h.stdout.String())
}

func TestShow_Missing(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("show", "absent-youtube-data-donation"))
}

func TestServe(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("serve"))
	assert.True(t, h.app.ran)
}
