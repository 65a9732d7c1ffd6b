package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/farm"
)

func TestSaveParameters(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 220
	p.MethaneInhibitor = true

	for _, name := range []string{"farm.json", "farm.yaml", "farm.YML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, saveParameters(path, p))

			got, err := farm.Load(path, farm.DefaultParameters())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		err := saveParameters(filepath.Join(t.TempDir(), "farm.txt"), p)
		require.ErrorIs(t, err, farm.ErrUnsupportedFormat)
	})

	t.Run("missing directory", func(t *testing.T) {
		err := saveParameters(filepath.Join(t.TempDir(), "no", "such", "farm.json"), p)
		require.Error(t, err)
	})
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 2, Reason: "3 parameter value(s) out of range"}
	assert.Equal(t, "3 parameter value(s) out of range", err.Error())
}
