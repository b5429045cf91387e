package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Do() }

type providerImpl struct{}

func (p *providerImpl) Do() {}

func TestCheckInit(t *testing.T) {
	t.Run(`initialized dependencies`, func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("a", &providerImpl{}, "b", 1)
		})
	})

	t.Run(`nil and typed nil`, func(t *testing.T) {
		var typed *providerImpl
		var iface provider = typed
		require.PanicsWithValue(t, "a dependency not initialized", func() { CheckInit("a", nil) })
		require.PanicsWithValue(t, "b dependency not initialized", func() { CheckInit("b", iface) })
	})

	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("a") })
	})
}
