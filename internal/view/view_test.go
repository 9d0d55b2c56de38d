package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/view"
)

func fixture() []domain.Destination {
	return []domain.Destination{
		{ID: "1", Name: "Paris", Status: domain.StatusVisited},
		{ID: "2", Name: "Kyoto", Status: domain.StatusWishlist},
		{ID: "3", Name: "Lima", Status: domain.StatusVisited},
	}
}

func TestProject_NilFilter_ReturnsAllInOrder(t *testing.T) {
	in := fixture()

	out := view.Project(in, nil)

	require.Equal(t, in, out)
	// Same content, but an independent slice the caller may mutate.
	out[0].Name = "mutated"
	assert.Equal(t, "Paris", in[0].Name)
}

func TestProject_StatusFilter_PreservesRelativeOrder(t *testing.T) {
	in := fixture()
	status := domain.StatusVisited

	out := view.Project(in, &status)

	require.Len(t, out, 2)
	assert.Equal(t, "Paris", out[0].Name)
	assert.Equal(t, "Lima", out[1].Name)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	status := domain.StatusWishlist

	_ = view.Project(in, &status)

	require.Equal(t, fixture(), in)
}

func TestProject_NoMatches_ReturnsEmptyNotNil(t *testing.T) {
	status := domain.StatusWishlist

	out := view.Project([]domain.Destination{{Status: domain.StatusVisited}}, &status)

	assert.NotNil(t, out)
	assert.Empty(t, out)
}
