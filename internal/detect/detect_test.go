package detect

import (
	"testing"

	"ddp/internal/extract"

	"github.com/stretchr/testify/assert"
)

func TestIdentify_ByFilename(t *testing.T) {
	assert.Equal(t, extract.Instagram, Identify("/tmp/instagram-user-2024-01-01-abc.zip", nil))
	assert.Equal(t, extract.LinkedIn, Identify("Basic_LinkedInDataExport_03-23-2024.zip", nil))
	assert.Equal(t, extract.LinkedIn, Identify("Complete_LinkedInDataExport_03-23-2024.zip", nil))
	assert.Equal(t, extract.YouTube, Identify(`C:\Users\me\takeout-20240323T100000Z-001.zip`, nil))
}

func TestIdentify_ByMarkers(t *testing.T) {
	assert.Equal(t, extract.Instagram, Identify("upload.zip", []string{"your_instagram_activity/likes/liked_posts.json"}))
	assert.Equal(t, extract.LinkedIn, Identify("upload.zip", []string{"Connections.csv"}))
	assert.Equal(t, extract.YouTube, Identify("upload.zip", []string{"Takeout/YouTube und YouTube Music/Verlauf/Wiedergabeverlauf.json"}))
	assert.Equal(t, extract.Unknown, Identify("upload.zip", []string{"notes.txt"}))
}

func TestValidate_Instagram(t *testing.T) {
	json := []string{"ads_information/ads_and_topics/ads_clicked.json"}
	html := []string{"ads_information/ads_and_topics/ads_clicked.html", "start_here.html"}

	assert.Equal(t, Valid, Validate(extract.Instagram, json))
	assert.Equal(t, WrongFormat, Validate(extract.Instagram, html))
	assert.Equal(t, NotPlatform, Validate(extract.Instagram, []string{"foo.json"}))
}

func TestValidate_LinkedInAndYouTube(t *testing.T) {
	assert.Equal(t, Valid, Validate(extract.LinkedIn, []string{"Connections.csv"}))
	assert.Equal(t, NotPlatform, Validate(extract.LinkedIn, []string{"Profile.txt"}))

	assert.Equal(t, Valid, Validate(extract.YouTube, []string{"Takeout/YouTube and YouTube Music/history/watch-history.json"}))
	assert.Equal(t, WrongFormat, Validate(extract.YouTube, []string{"Takeout/YouTube and YouTube Music/history/watch-history.html"}))
	assert.Equal(t, NotPlatform, Validate(extract.Unknown, []string{"Connections.csv"}))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid_no_json", WrongFormat.String())
	assert.Equal(t, "invalid_no_ddp", NotPlatform.String())
	assert.Equal(t, "invalid_file", InvalidArchive.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
