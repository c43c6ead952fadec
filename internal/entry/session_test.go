package entry

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/foodblog/internal/sqlite"
	"github.com/petar-djukic/foodblog/pkg/types"
)

// newCatalog returns a bootstrapped store in a temp dir.
func newCatalog(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()
	s, err := sqlite.Open(ctx, types.Config{
		Path:   filepath.Join(t.TempDir(), "food_blog.db"),
		Logger: slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Bootstrap(ctx, sqlite.DefaultSeeds()))
	return s
}

// runSession feeds script lines to a session and returns the count saved
// and the output.
func runSession(t *testing.T, catalog types.Catalog, script ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(script, "\n") + "\n"
	session := NewSession(catalog, NewLinePrompter(strings.NewReader(input), &out), &out, slog.New(slog.DiscardHandler))

	saved, err := session.Run(context.Background())
	require.NoError(t, err)
	return saved, out.String()
}

func TestSession_EmptyNameExits(t *testing.T) {
	s := newCatalog(t)

	saved, out := runSession(t, s, "")
	assert.Equal(t, 0, saved)
	assert.Contains(t, out, exitHint)
	assert.Contains(t, out, labelName)
}

func TestSession_EndOfInputExits(t *testing.T) {
	s := newCatalog(t)
	var out bytes.Buffer

	session := NewSession(s, NewLinePrompter(strings.NewReader(""), &out), &out, nil)
	saved, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
}

func TestSession_EntersRecipe(t *testing.T) {
	s := newCatalog(t)
	ctx := context.Background()

	saved, out := runSession(t, s,
		"hot chocolate",
		"warm milk with cacao",
		"1 3",
		"250 ml milk",
		"2 tbsp cacao",
		"1 sugar",
		"",
		"",
	)
	assert.Equal(t, 1, saved)
	assert.Contains(t, out, "1) breakfast 2) brunch 3) lunch 4) supper")

	rec, err := s.Recipes().FindByName(ctx, "hot chocolate")
	require.NoError(t, err)
	assert.Equal(t, "warm milk with cacao", rec.Description)

	got, err := s.FindRecipes(ctx, []string{"milk", "cacao", "sugar"}, []string{"lunch"})
	require.NoError(t, err)
	assert.Equal(t, "hot chocolate", got)

	got, err = s.FindRecipes(ctx, []string{"milk", "cacao"}, []string{"brunch"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSession_ReportsAndSkipsBadLines(t *testing.T) {
	s := newCatalog(t)
	ctx := context.Background()

	saved, out := runSession(t, s,
		"berry bowl",
		"",
		"9",
		"4",
		"milk",
		"lots g strawberry",
		"1 cup flour",
		"1 bucket sugar",
		"100 g black",
		"50 g blue",
		"",
		"",
	)
	assert.Equal(t, 1, saved)
	assert.Contains(t, out, "Invalid meal:")
	assert.Contains(t, out, "Invalid ingredient line:")
	assert.Contains(t, out, `Unknown ingredient "flour"`)
	assert.Contains(t, out, `Unknown measure "bucket"`)

	got, err := s.FindRecipes(ctx, []string{"blackberry", "blueberry"}, []string{"supper"})
	require.NoError(t, err)
	assert.Equal(t, "berry bowl", got)

	got, err = s.FindRecipes(ctx, []string{"blackberry", "sugar"}, []string{"supper"})
	require.NoError(t, err)
	assert.Equal(t, "", got, "rejected sugar line must not be stored")
}

func TestSession_SeveralRecipes(t *testing.T) {
	s := newCatalog(t)
	ctx := context.Background()

	saved, _ := runSession(t, s,
		"toast", "bread", "1", "",
		"toast", "more bread", "2", "",
		"",
	)
	assert.Equal(t, 2, saved)

	all, err := s.Recipes().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bread", all[0].Description)
	assert.Equal(t, "more bread", all[1].Description)
}
