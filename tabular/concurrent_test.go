package tabular

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestConcurrentLoads(t *testing.T) {
	shared := writeFile(t, "shared.csv", "1,2,3\n4,5,6\n7,8,9\n")
	want, err := Load(shared)
	require.NoError(t, err)

	dir := t.TempDir()
	results := make([]*Matrix, 16)
	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			path := shared
			if i%2 == 1 {
				path = filepath.Join(dir, fmt.Sprintf("copy-%d.csv", i))
				if err := SaveText(path, want); err != nil {
					return err
				}
			}
			m, err := Load(path)
			results[i] = m
			return err
		})
	}
	require.NoError(t, g.Wait())
	for i, m := range results {
		assert.True(t, want.Equal(m), "load %d", i)
	}
}
