package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"figedit/internal/codec"
	"figedit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	return New(nil), t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInferFormat(t *testing.T) {
	tests := []struct {
		path string
		want codec.Format
	}{
		{"a.txt", codec.Text},
		{"a.TXT", codec.Text},
		{"a.json", codec.JSON},
		{"a.JSON", codec.JSON},
		{"dir.d/a.Xml", codec.XML},
		{"a.dat", codec.Unsupported},
		{"a", codec.Unsupported},
		{"a.json.bak", codec.Unsupported},
		{"", codec.Unsupported},
	}

	for _, tt := range tests {
		if got := InferFormat(tt.path); got != tt.want {
			t.Errorf("InferFormat(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestEditRoundTripText(t *testing.T) {
	s, dir := newTestStore(t)
	path := filepath.Join(dir, "fig.txt")
	writeFile(t, path, "Name: Box\nWidth: 10\nHeight: 20")

	fig, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.NewFigure("Box", 10, 20), fig)

	fig.Width = 15
	require.NoError(t, s.Save(path, fig))
	assert.Equal(t, "Name: Box\nWidth: 15\nHeight: 20", readFile(t, path))
}

func TestSaveLoadAllFormats(t *testing.T) {
	s, dir := newTestStore(t)
	fig := domain.NewFigure("Panel", 640, 480)

	for _, name := range []string{"fig.txt", "fig.json", "fig.xml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, s.Save(path, fig))

		got, err := s.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, fig, got, name)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s, dir := newTestStore(t)
	path := filepath.Join(dir, "fig.json")
	fig := domain.NewFigure("Box", 1, 2)

	require.NoError(t, s.Save(path, fig))
	first := readFile(t, path)
	require.NoError(t, s.Save(path, fig))
	assert.Equal(t, first, readFile(t, path))
}

func TestSaveOverwrites(t *testing.T) {
	s, dir := newTestStore(t)
	path := filepath.Join(dir, "fig.txt")
	writeFile(t, path, "a much longer previous content that must not survive the overwrite\n\n\n")

	require.NoError(t, s.Save(path, domain.NewFigure("x", 1, 2)))
	assert.Equal(t, "Name: x\nWidth: 1\nHeight: 2", readFile(t, path))
}

func TestLoadErrors(t *testing.T) {
	s, dir := newTestStore(t)

	badTxt := filepath.Join(dir, "bad.txt")
	writeFile(t, badTxt, "Name: x")
	badJSON := filepath.Join(dir, "bad.json")
	writeFile(t, badJSON, "{")
	dat := filepath.Join(dir, "fig.dat")
	writeFile(t, dat, "Name: x\nWidth: 1\nHeight: 2")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.txt"), ErrFileNotFound},
		{"missing unsupported", filepath.Join(dir, "missing.dat"), ErrFileNotFound},
		{"directory", dir, ErrFileNotFound},
		{"unsupported", dat, ErrUnsupportedFormat},
		{"too few lines", badTxt, codec.ErrTooFewLines},
		{"malformed json", badJSON, codec.ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := s.Load(tt.path)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.Figure{}, fig)
		})
	}
}

func TestLoadDecodeErrorIsTyped(t *testing.T) {
	s, dir := newTestStore(t)
	path := filepath.Join(dir, "fig.txt")
	writeFile(t, path, "Name: x\nWidth: abc\nHeight: 3")

	_, err := s.Load(path)
	var de *codec.DecodeError
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, codec.ErrInvalidInteger)
}

func TestSaveErrors(t *testing.T) {
	s, dir := newTestStore(t)

	err := s.Save(filepath.Join(dir, "fig.yaml"), domain.Figure{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(filepath.Join(dir, "fig.yaml"))
	assert.True(t, os.IsNotExist(statErr), "unsupported save must not create a file")

	err = s.Save(filepath.Join(dir, "no", "such", "dir", "fig.txt"), domain.Figure{})
	assert.ErrorIs(t, err, ErrIO)
}

func TestConvert(t *testing.T) {
	s, dir := newTestStore(t)
	src := filepath.Join(dir, "fig.txt")
	dst := filepath.Join(dir, "fig.json")
	writeFile(t, src, "Name: Box\nWidth: 10\nHeight: 20")

	fig, err := s.Convert(src, dst)
	require.NoError(t, err)
	assert.Equal(t, domain.NewFigure("Box", 10, 20), fig)
	assert.Equal(t, "{\n  \"Name\": \"Box\",\n  \"Width\": 10,\n  \"Height\": 20\n}", readFile(t, dst))

	_, err = s.Convert(src, filepath.Join(dir, "fig.bin"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
