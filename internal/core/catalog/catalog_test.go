package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"food-handbook/internal/infrastructure/config"

	"github.com/stretchr/testify/require"
)

func TestCategoryMappings(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		require.NotEmpty(t, c.Label())
		require.Equal(t, c, ParseCategory(c.Label()))
		require.NotEqual(t, defaultBadge, c.Badge(), c.Label())
		require.NotEqual(t, defaultEmoji, c.Emoji(), c.Label())
	}

	unknown := ParseCategory("调味品")
	require.Equal(t, CategoryUnknown, unknown)
	require.Equal(t, defaultBadge, unknown.Badge())
	require.Equal(t, "📦", unknown.Emoji())
	require.Equal(t, len(Categories()), unknown.Priority())
	require.Equal(t, 0, CategoryVegetable.Priority())
	require.Equal(t, 6, CategoryOffal.Priority())
}

func TestFilterLabels(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"全部", "蔬菜", "水果", "肉类", "海鲜", "豆制品", "菌菇", "内脏"}, FilterLabels())
	require.True(t, IsFilterLabel("全部"))
	require.True(t, IsFilterLabel("菌菇"))
	require.False(t, IsFilterLabel("零食"))
}

func TestNewRejectsInvalidItems(t *testing.T) {
	t.Parallel()

	_, err := New([]FoodItem{{Name: " "}})
	require.Error(t, err)

	_, err = New([]FoodItem{{Name: "豆腐"}, {Name: "豆腐"}})
	require.Error(t, err)

	cat, err := New(sampleItems())
	require.NoError(t, err)
	item, ok := cat.Lookup("西瓜")
	require.True(t, ok)
	require.Equal(t, "水果", item.Category)
	_, ok = cat.Lookup("榴莲")
	require.False(t, ok)
	require.Equal(t, []string{"菠菜", "西瓜"}, cat.Names())
}

func TestLoaderEmbedded(t *testing.T) {
	t.Parallel()

	cat, err := NewLoader(config.CatalogConfig{Source: config.CatalogSourceEmbedded}).Load(context.Background())
	require.NoError(t, err)
	require.NotZero(t, cat.Len())

	for _, item := range cat.Items() {
		require.NotEqual(t, CategoryUnknown, item.Kind(), item.Name)
		require.False(t, item.Months().Empty(), "%s has unparseable season %q", item.Name, item.Season)
	}
}

func TestLoaderFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "foods.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"西瓜","category":"水果","season":"6–8月","origin":"新疆","recipe":"鲜食"}]`), 0o644))

	cat, err := NewLoader(config.CatalogConfig{Source: config.CatalogSourceFile, Path: path}).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	_, err = NewLoader(config.CatalogConfig{Source: config.CatalogSourceFile, Path: path + ".missing"}).Load(context.Background())
	require.Error(t, err)
}

func TestLoaderRemote(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/foods.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"菠菜","category":"蔬菜","season":"全年","origin":"","recipe":""}]`))
		case "/bad.json":
			_, _ = w.Write([]byte(`[{"name":"菠菜","unexpected":true}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	load := func(path string) (*Catalog, error) {
		return NewLoader(config.CatalogConfig{
			Source:  config.CatalogSourceRemote,
			URL:     srv.URL + path,
			Timeout: 5 * time.Second,
		}).Load(context.Background())
	}

	cat, err := load("/foods.json")
	require.NoError(t, err)
	require.Equal(t, []string{"菠菜"}, cat.Names())

	_, err = load("/bad.json")
	require.Error(t, err)

	_, err = load("/missing.json")
	require.Error(t, err)
}

func TestDecodeAcceptsUnknownCategory(t *testing.T) {
	t.Parallel()

	cat, err := Decode([]byte(`[{"name":"八角","category":"调味品","season":"秋"}]`))
	require.NoError(t, err)
	item, ok := cat.Lookup("八角")
	require.True(t, ok)
	require.Equal(t, CategoryUnknown, item.Kind())
}
