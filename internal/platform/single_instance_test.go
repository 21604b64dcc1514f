package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceExclusion(t *testing.T) {
	guard, err := AcquireSingleInstance("loook-test")
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()

	_, err = AcquireSingleInstance("loook-test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestReleaseAllowsReacquire(t *testing.T) {
	guard, err := AcquireSingleInstance("loook-test-release")
	require.NoError(t, err)
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance("loook-test-release")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Address())
	_ = again.Release()
}
