package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`Slugify check`, func(t *testing.T) {
		require.Equal(t, "senior-backend-engineer", Slugify("Senior Backend Engineer"))
		require.Equal(t, "c-developer", Slugify("C++ Developer"))
		require.Equal(t, "front-end-lead", Slugify("  Front -- End   Lead! "))
		require.Equal(t, "", Slugify("!!!"))
	})

	t.Run(`ParseInt check`, func(t *testing.T) {
		require.Equal(t, 5, ParseInt("5", 1))
		require.Equal(t, 1, ParseInt("abc", 1))
		require.Equal(t, 10, ParseInt("", 10))
		require.Equal(t, -3, ParseInt(" -3 ", 10))
	})

	t.Run(`SplitList check`, func(t *testing.T) {
		require.Equal(t, []string{"react", "backend"}, SplitList("react, backend,,"))
		require.Nil(t, SplitList("  "))
	})

	t.Run(`IsContextDone check`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		require.False(t, IsContextDone(ctx))
		cancel()
		require.True(t, IsContextDone(ctx))
	})
}
