package cards_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/office-cheer/cards"
)

type stubRenderer struct {
	img []byte
	err error
}

func (s stubRenderer) Render(context.Context, string, int, int) ([]byte, error) {
	return s.img, s.err
}

func TestLibrary_NilRendererUsesPlaceholders(t *testing.T) {
	lib := cards.NewLibrary(nil, t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	assert.Equal(t, cards.PlaceholderBirthday, lib.BirthdayCard(ctx, hobbyist()))
	assert.Equal(t, cards.PlaceholderAnniversary, lib.AnniversaryCard(ctx, hobbyist(), 5))
}

func TestLibrary_RenderErrorDegradesToPlaceholder(t *testing.T) {
	lib := cards.NewLibrary(stubRenderer{err: errors.New("endpoint down")}, t.TempDir(), zerolog.Nop())

	ref := lib.BirthdayCard(context.Background(), hobbyist())
	assert.Equal(t, cards.PlaceholderBirthday, ref)
}

func TestLibrary_SavesRenderedImage(t *testing.T) {
	dir := t.TempDir()
	lib := cards.NewLibrary(stubRenderer{img: []byte("png-bytes")}, dir, zerolog.Nop())

	ref := lib.AnniversaryCard(context.Background(), hobbyist("hiking"), 10)
	require.NotEqual(t, cards.PlaceholderAnniversary, ref)
	assert.Equal(t, dir, filepath.Dir(ref))
	assert.Contains(t, filepath.Base(ref), "anniversary_10yr")

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestLibrary_SaveFailureDegradesToPlaceholder(t *testing.T) {
	// A file where the image dir should be makes MkdirAll fail.
	dir := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0o644))

	lib := cards.NewLibrary(stubRenderer{img: []byte("png-bytes")}, dir, zerolog.Nop())

	ref := lib.BirthdayCard(context.Background(), hobbyist())
	assert.Equal(t, cards.PlaceholderBirthday, ref)
}
