package patcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/diffpatch/internal/testutil"
	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// TestGoldenPatchesApply applies every golden expected.patch to its old.txt
// and checks the result against new.txt, in both directions.
func TestGoldenPatchesApply(t *testing.T) {
	root := filepath.Join("..", "diff", "testdata", "golden")
	entries, err := os.ReadDir(root)
	require.NoError(t, err)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			dir := filepath.Join(root, entry.Name())
			oldText, newText := testutil.ReadGoldenPair(t, dir)
			data, err := os.ReadFile(filepath.Join(dir, "expected.patch"))
			require.NoError(t, err)

			p, err := patch.Parse(string(data))
			require.NoError(t, err)

			// Empty content carries no trailing newline, so compare lines.
			got, err := Apply(p, oldText, false)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimRight(newText, "\n"), strings.TrimRight(got, "\n"))

			got, err = Apply(p, newText, true)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimRight(oldText, "\n"), strings.TrimRight(got, "\n"))
		})
	}
}
