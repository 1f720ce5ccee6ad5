package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ddp/internal/archive"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/providers"
	"ddp/internal/records"
	"ddp/internal/structures"
	"ddp/internal/table"
	"ddp/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const likedPosts = `{"likes_media_likes":[
	{"string_list_data":[{"timestamp":1700000000}]},
	{"string_list_data":[{"timestamp":1700000010}]},
	{"string_list_data":[{"timestamp":1700000020}]},
	{"string_list_data":[{"timestamp":1700086400}]}
]}`

func testConfig() *structures.Config {
	return &structures.Config{Extraction: structures.ExtractionConfig{
		UTCOffset:   time.Hour,
		SessionGap:  time.Minute,
		SessionTail: 30 * time.Second,
	}}
}

func newDriver() (DriverInterface, *testutil.MockLogger, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	return NewDriver(testConfig(), logger, metrics), logger, metrics
}

func openZip(t *testing.T, entries ...testutil.Entry) *archive.Archive {
	t.Helper()
	a, err := archive.FromBytes("test.zip", testutil.BuildZip(t, entries...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func collect(seq func(func(Progress) bool)) []Progress {
	var out []Progress
	for ev := range seq {
		out = append(out, ev)
	}
	return out
}

func instagram(t *testing.T) *extract.Platform {
	p, ok := extract.Lookup(extract.Instagram)
	require.True(t, ok)
	return p
}

func indexOf(p *extract.Platform, key string) int {
	for i, k := range p.Keys() {
		if k == key {
			return i
		}
	}
	return -1
}

func TestRun_LikedPostsScenario(t *testing.T) {
	d, _, metrics := newDriver()
	a := openZip(t, testutil.Entry{Name: "your_instagram_activity/likes/liked_posts.json", Body: likedPosts})
	p := instagram(t)

	events := collect(d.Run(context.Background(), a, p, locale.EN, nil))
	require.Len(t, events, len(p.Artifacts))

	last := events[len(events)-1]
	assert.True(t, last.Done)
	assert.Equal(t, float64(100), last.Percentage)
	assert.Equal(t, "Data extraction completed", last.Message)
	require.Len(t, last.Tables, len(p.Artifacts))

	liked := last.Tables[indexOf(p, "liked_posts")]
	assert.Equal(t, "liked_posts", liked.Key)
	assert.Equal(t, "How often did you like posts? [per day]", liked.Title)
	assert.Equal(t, [][]any{{"14-11-2023", 3}, {"15-11-2023", 1}}, liked.Rows)

	missing := last.Tables[0]
	assert.Equal(t, "ads_clicked", missing.Key)
	assert.Equal(t, [][]any{{`(file "ads_clicked" missing)`}}, missing.Rows)

	assert.Equal(t, 1, metrics.Outcome("instagram", providers.OutcomeOK))
	assert.Equal(t, len(p.Artifacts)-1, metrics.Outcome("instagram", providers.OutcomeMissing))
	assert.Equal(t, 1, metrics.Started)
	assert.Equal(t, 1, metrics.Finished["instagram"])
}

func TestRun_ProgressIsOrderedAndCopied(t *testing.T) {
	d, _, _ := newDriver()
	a := openZip(t, testutil.Entry{Name: "liked_posts.json", Body: likedPosts})
	p := instagram(t)

	events := collect(d.Run(context.Background(), a, p, locale.DE, nil))
	for i, ev := range events {
		assert.Equal(t, i+1, ev.Index)
		assert.Len(t, ev.Tables, i+1)
		assert.Equal(t, p.Artifacts[i].Key, ev.Tables[i].Key)
		if i > 0 {
			assert.Greater(t, ev.Percentage, events[i-1].Percentage)
		}
	}
	assert.Equal(t, "Daten-Extrahierung aus der Datei: ads_clicked", events[0].Message)

	events[0].Tables[0] = nil
	assert.NotNil(t, events[1].Tables[0])
}

func TestRun_Idempotent(t *testing.T) {
	d, _, _ := newDriver()
	a := openZip(t, testutil.Entry{Name: "liked_posts.json", Body: likedPosts})
	p := instagram(t)

	encode := func() []byte {
		events := collect(d.Run(context.Background(), a, p, locale.NL, nil))
		data, err := json.Marshal(events[len(events)-1].Tables)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, encode(), encode())
}

func TestRun_SentinelIsMetered(t *testing.T) {
	d, logger, metrics := newDriver()
	a := openZip(t, testutil.Entry{
		Name: "liked_posts.json",
		Body: `{"likes_media_likes":[{"string_list_data":[{"timestamp":"soon"}]}]}`,
	})

	events := collect(d.Run(context.Background(), a, instagram(t), locale.EN, nil))
	require.NotEmpty(t, events)
	assert.Equal(t, 1, metrics.Sentinel["instagram"])
	assert.True(t, logger.Contains("warn", "01-01-1999"))
}

func textTitle(s string) locale.Text {
	return locale.Text{locale.DE: s, locale.EN: s, locale.NL: s}
}

func testPlatform(artifacts ...extract.Descriptor) *extract.Platform {
	return &extract.Platform{
		ID:        "test",
		Name:      "Test",
		Locator:   records.Locator{Mode: records.MatchSubstring},
		Artifacts: artifacts,
	}
}

func descriptor(key string, fn extract.Func) extract.Descriptor {
	return extract.Descriptor{Key: key, Patterns: []string{key}, Title: textTitle(key), Extract: fn}
}

func TestRun_FailuresAreIsolated(t *testing.T) {
	d, logger, metrics := newDriver()
	a := openZip(t,
		testutil.Entry{Name: "alpha.json", Body: `{}`},
		testutil.Entry{Name: "beta.json", Body: `{}`},
		testutil.Entry{Name: "gamma.json", Body: `{}`},
		testutil.Entry{Name: "delta.json", Body: `not json`},
	)
	p := testPlatform(
		descriptor("alpha", func(*extract.Input) (*table.Table, error) {
			return nil, fmt.Errorf("reading: %w", &records.ShapeError{Path: ".x", Want: "list", Got: "object"})
		}),
		descriptor("beta", func(*extract.Input) (*table.Table, error) {
			panic("boom")
		}),
		descriptor("gamma", func(*extract.Input) (*table.Table, error) {
			t := table.New("", "", "Count")
			t.Append(1)
			return t, nil
		}),
		descriptor("delta", func(*extract.Input) (*table.Table, error) {
			return table.New("", "", "never"), nil
		}),
	)

	events := collect(d.Run(context.Background(), a, p, locale.EN, nil))
	require.Len(t, events, 4)
	tables := events[3].Tables

	assert.Equal(t, []string{"alpha"}, tables[0].Columns)
	assert.Equal(t, [][]any{{"extraction failed - (alpha, *records.ShapeError)"}}, tables[0].Rows)
	assert.Equal(t, [][]any{{"extraction failed - (beta, string)"}}, tables[1].Rows)
	assert.Equal(t, [][]any{{1}}, tables[2].Rows)
	assert.Equal(t, [][]any{{`(file "delta" missing)`}}, tables[3].Rows)

	assert.Equal(t, 2, metrics.Outcome("test", providers.OutcomeFailed))
	assert.Equal(t, 1, metrics.Outcome("test", providers.OutcomeOK))
	assert.Equal(t, 1, metrics.Outcome("test", providers.OutcomeMissing))
	assert.True(t, logger.Contains("warn", "cannot decode delta.json"))
	assert.True(t, logger.Contains("error", "beta"))
}

func TestRun_CancelBetweenArtifacts(t *testing.T) {
	d, _, metrics := newDriver()
	a := openZip(t, testutil.Entry{Name: "alpha.json", Body: `{}`})
	ok := func(*extract.Input) (*table.Table, error) { return table.New("", "", "c"), nil }
	p := testPlatform(descriptor("alpha", ok), descriptor("beta", ok), descriptor("gamma", ok))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen int
	for range d.Run(ctx, a, p, locale.EN, nil) {
		seen++
		cancel()
	}
	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, metrics.Finished["test"])
}

func TestRun_ConsumerStopsEarly(t *testing.T) {
	d, _, metrics := newDriver()
	a := openZip(t, testutil.Entry{Name: "alpha.json", Body: `{}`})
	p := instagram(t)

	for range d.Run(context.Background(), a, p, locale.EN, nil) {
		break
	}
	assert.Equal(t, 1, metrics.Finished["instagram"])
}

func TestRun_EmptyRegistry(t *testing.T) {
	d, _, _ := newDriver()
	a := openZip(t)

	events := collect(d.Run(context.Background(), a, testPlatform(), locale.EN, nil))
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	assert.Equal(t, float64(100), events[0].Percentage)
	assert.Empty(t, events[0].Tables)
}

func TestScanPictures(t *testing.T) {
	d, logger, _ := newDriver()
	a := openZip(t,
		testutil.Entry{Name: "media/posts/a.jpg", Body: "jpg"},
		testutil.Entry{Name: "media/posts/b.jpg", Body: "jpg"},
		testutil.Entry{Name: "your_instagram_activity/content/posts_1.json", Body: `[]`},
	)
	classifier := &testutil.MockClassifier{
		Faces: map[string]bool{"media/posts/a.jpg": true},
		Err:   map[string]error{"media/posts/b.jpg": errors.New("decoder")},
	}

	var events []PictureProgress
	for ev := range d.ScanPictures(context.Background(), a, classifier, locale.EN) {
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, "Extraction of image information: media/posts/a.jpg", events[0].Message)
	assert.Nil(t, events[0].Pictures)

	last := events[3]
	assert.True(t, last.Done)
	assert.Equal(t, float64(100), last.Percentage)
	assert.Equal(t, extract.Pictures{
		"media/posts/a.jpg": true,
		"media/posts/b.jpg": locale.NotAnalyzed,
		"your_instagram_activity/content/posts_1.json": locale.NotAnalyzed,
	}, last.Pictures)
	assert.Equal(t, []string{"media/posts/a.jpg", "media/posts/b.jpg"}, classifier.Calls)
	assert.True(t, logger.Contains("warn", "classifier failed"))
}

func TestScanPictures_NilClassifier(t *testing.T) {
	d, _, _ := newDriver()
	a := openZip(t, testutil.Entry{Name: "media/p.jpg", Body: "jpg"})

	var last PictureProgress
	for ev := range d.ScanPictures(context.Background(), a, nil, locale.EN) {
		last = ev
	}
	assert.Equal(t, extract.Pictures{"media/p.jpg": locale.NotAnalyzed}, last.Pictures)
}

func TestPicturesFeedMediaExtractors(t *testing.T) {
	d, _, _ := newDriver()
	a := openZip(t,
		testutil.Entry{Name: "media/profile/me.jpg", Body: "jpg"},
		testutil.Entry{Name: "your_instagram_activity/media/profile_photos.json", Body: `{"ig_profile_picture":[{"uri":"media/profile/me.jpg"}]}`},
	)
	classifier := &testutil.MockClassifier{Faces: map[string]bool{"media/profile/me.jpg": true}}

	var pictures extract.Pictures
	for ev := range d.ScanPictures(context.Background(), a, classifier, locale.EN) {
		pictures = ev.Pictures
	}
	p := instagram(t)
	events := collect(d.Run(context.Background(), a, p, locale.EN, pictures))
	photo := events[len(events)-1].Tables[indexOf(p, "profile_photos")]
	assert.Equal(t, [][]any{{"Yes"}}, photo.Rows)
}

func TestIsPicture(t *testing.T) {
	assert.True(t, IsPicture("media/posts/a.jpg"))
	assert.True(t, IsPicture("Media/Stories/B.JPG"))
	assert.False(t, IsPicture("media/posts/a.png"))
	assert.False(t, IsPicture("content/media/a.jpg"))
}

func TestSummarize(t *testing.T) {
	single := table.New("subscription_for_no_ads", "Ads?", "Subscription", "Since")
	single.Append("Yes", "01-01-2024")
	multi := table.New("liked_posts", "Likes", "Date", "Count")
	multi.Append("14-11-2023", 3)
	multi.Append("15-11-2023", 1)

	out := Summarize([]*table.Table{single, multi}, locale.DE)
	require.Len(t, out, 2)
	assert.Same(t, multi, out[0])

	summary := out[1]
	assert.Equal(t, SummaryKey, summary.Key)
	assert.Equal(t, "Übersicht von zusätzlichen Informationen", summary.Title)
	assert.Equal(t, []string{"Kategorie", "Daten"}, summary.Columns)
	assert.Equal(t, [][]any{{"Ads?", "Subscription: Yes |> Since: 01-01-2024"}}, summary.Rows)
}

func TestSummarize_NoSingleRowTables(t *testing.T) {
	multi := table.New("k", "t", "c")
	out := Summarize([]*table.Table{multi}, locale.EN)
	assert.Equal(t, []*table.Table{multi}, out)
}

func TestErrorClass(t *testing.T) {
	assert.Equal(t, "*records.ShapeError", errorClass(fmt.Errorf("a: %w", &records.ShapeError{})))
	assert.Equal(t, "*errors.errorString", errorClass(errors.New("x")))
	assert.Equal(t, "int", errorClass(3))
}

func TestScanPictures_DefaultClassifier(t *testing.T) {
	d, logger, _ := newDriver()
	a := openZip(t, testutil.Entry{Name: "media/p.jpg", Body: "jpg"})

	var last PictureProgress
	for ev := range d.ScanPictures(context.Background(), a, NewClassifier(), locale.EN) {
		last = ev
	}
	assert.Equal(t, extract.Pictures{"media/p.jpg": locale.NotAnalyzed}, last.Pictures)
	assert.False(t, logger.Contains("warn", "media/p.jpg"))
}
