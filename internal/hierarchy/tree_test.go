package hierarchy

import (
	"testing"

	"apexfinance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id, name string, parent string) models.Category {
	c := models.Category{Name: name}
	c.ID = id
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func paths(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.FullPath)
	}
	return out
}

func TestBuild(t *testing.T) {
	t.Run("assigns full path and level", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("1", "Housing", ""),
			cat("2", "Rent", "1"),
			cat("3", "Utilities", "1"),
			cat("4", "Electricity", "3"),
		})

		require.NoError(t, forest.Err())
		require.Len(t, forest.Roots, 1)
		assert.Equal(t, []string{
			"Housing",
			"Housing / Rent",
			"Housing / Utilities",
			"Housing / Utilities / Electricity",
		}, paths(forest.Flatten()))

		n, ok := forest.Node("4")
		require.True(t, ok)
		assert.Equal(t, 3, n.Level)
		assert.Equal(t, "Housing / Utilities / Electricity", n.FullPath)
	})

	t.Run("promotes orphans to root", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("a", "Food", ""),
			cat("b", "Snacks", "missing"),
		})

		require.NoError(t, forest.Err())
		require.Len(t, forest.Roots, 2)
		n, _ := forest.Node("b")
		assert.Equal(t, 1, n.Level)
		assert.Equal(t, "Snacks", n.FullPath)
	})

	t.Run("children keep input order", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("r", "Root", ""),
			cat("z", "Zeta", "r"),
			cat("a", "Alpha", "r"),
		})

		assert.Equal(t, []string{"Root", "Root / Zeta", "Root / Alpha"}, paths(forest.Flatten()))
	})

	t.Run("canonical order sorts by full path", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("r2", "Work", ""),
			cat("r", "Home", ""),
			cat("z", "Zeta", "r"),
			cat("a", "Alpha", "r"),
		}, WithCanonicalOrder())

		assert.Equal(t, []string{"Home", "Home / Alpha", "Home / Zeta", "Work"}, paths(forest.Flatten()))
		assert.Equal(t, "Home", forest.Roots[0].FullPath)
		assert.Equal(t, "Home / Alpha", forest.Roots[0].Children[0].FullPath)
	})

	t.Run("empty input", func(t *testing.T) {
		forest := Build(nil)

		require.NoError(t, forest.Err())
		assert.Empty(t, forest.Roots)
		assert.Empty(t, forest.Flatten())
		assert.Equal(t, Stats{}, forest.Stats())
	})

	t.Run("duplicate ids keep first", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("1", "First", ""),
			cat("1", "Second", ""),
		})

		assert.Equal(t, 1, forest.Len())
		n, _ := forest.Node("1")
		assert.Equal(t, "First", n.Category.Name)
	})
}

func TestBuild_Cycles(t *testing.T) {
	t.Run("two node cycle", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("a", "A", "b"),
			cat("b", "B", "a"),
		})

		err := forest.Err()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCycleDetected)
		assert.Equal(t, []string{"a"}, forest.Cycles)
		assert.Equal(t, []string{"A", "A / B"}, paths(forest.Flatten()))
	})

	t.Run("self parent", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("x", "X", "x"),
			cat("y", "Y", "x"),
		})

		assert.ErrorIs(t, forest.Err(), ErrCycleDetected)
		assert.Equal(t, []string{"x"}, forest.Cycles)
		assert.Equal(t, []string{"X", "X / Y"}, paths(forest.Flatten()))
	})

	t.Run("tail leading into cycle", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("t", "Tail", "c2"),
			cat("c1", "C1", "c3"),
			cat("c2", "C2", "c1"),
			cat("c3", "C3", "c2"),
		})

		assert.Equal(t, []string{"c1"}, forest.Cycles)
		assert.Equal(t, 4, forest.Len())
		n, _ := forest.Node("t")
		assert.Equal(t, "C1 / C2 / Tail", n.FullPath)
		assert.Equal(t, 3, n.Level)
	})

	t.Run("independent cycles are all reported", func(t *testing.T) {
		forest := Build([]models.Category{
			cat("a", "A", "b"),
			cat("b", "B", "a"),
			cat("c", "C", "c"),
			cat("ok", "Fine", ""),
		})

		assert.Equal(t, []string{"a", "c"}, forest.Cycles)
		assert.Len(t, forest.Roots, 3)
	})
}

func TestNode_Descendants(t *testing.T) {
	forest := Build([]models.Category{
		cat("1", "Housing", ""),
		cat("2", "Rent", "1"),
		cat("3", "Utilities", "1"),
		cat("4", "Electricity", "3"),
		cat("5", "Food", ""),
	})

	n, ok := forest.Node("1")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3", "4"}, n.Descendants())

	leaf, _ := forest.Node("4")
	assert.Equal(t, []string{"4"}, leaf.Descendants())

	_, ok = forest.Node("nope")
	assert.False(t, ok)
}

func TestForest_Stats(t *testing.T) {
	project := cat("2", "Launch", "1")
	project.IsProject = true

	forest := Build([]models.Category{
		cat("1", "Business", ""),
		project,
		cat("3", "Ads", "2"),
	})

	assert.Equal(t, Stats{TotalCategories: 3, ProjectCount: 1, MaxLevel: 3}, forest.Stats())
}
