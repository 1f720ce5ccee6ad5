package archive

import (
	"os"
	"path/filepath"
	"testing"

	"ddp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytes_ListsAndReadsEntries(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.Entry{Name: "ads_information/ads_clicked.json", Body: `{"a":1}`},
		testutil.Entry{Name: "media/posts/1.jpg", Body: "jpeg"},
	)

	a, err := FromBytes("instagram-user.zip", data)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "instagram-user.zip", a.Name())
	assert.Equal(t, []string{"ads_information/ads_clicked.json", "media/posts/1.jpg"}, a.Names())
	assert.True(t, a.Has("media/posts/1.jpg"))

	body, err := a.Read("ads_information/ads_clicked.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestRead_MissingEntry(t *testing.T) {
	a, err := FromBytes("x.zip", testutil.BuildZip(t))
	require.NoError(t, err)

	_, err = a.Read("nope.json")
	assert.ErrorIs(t, err, ErrNoEntry)
}

func TestFromBytes_Corrupt(t *testing.T) {
	_, err := FromBytes("broken.zip", []byte("definitely not a zip"))
	assert.ErrorIs(t, err, ErrInvalidArchive)
}

func TestOpen_FileOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "takeout-1.zip")
	require.NoError(t, os.WriteFile(path, testutil.BuildZip(t,
		testutil.Entry{Name: "Takeout/YouTube and YouTube Music/history/watch-history.json", Body: "[]"},
	), 0644))

	a, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "takeout-1.zip", a.Name())
	assert.Len(t, a.Names(), 1)
	require.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestOpen_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK but not really"), 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrInvalidArchive)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.zip"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
