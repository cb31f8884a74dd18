package clut

import(
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadWellFormed1D(t *testing.T) {
	path := writeFile(t, "ramp.cube", "LUT_1D_SIZE 2\n0 0 0\n1 1 1\n")

	c, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ramp", c.Name)
	assert.Equal(t, 2, c.Size)
	assert.False(t, c.Is3D)
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 1}, c.Data)
}

func TestLoadShortFileFails(t *testing.T) {
	path := writeFile(t, "short.cube", "LUT_1D_SIZE 4\n0 0 0\n0.5 0.5 0.5\n1 1 1\n")

	c, err := LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.False(t, errors.Is(err, fs.ErrNotExist))
	assert.Nil(t, c.Data, "no partial table on failure")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.cube"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Filename, "nope.cube")
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no header", "0 0 0\n1 1 1\n"},
		{"bad size", "LUT_1D_SIZE two\n0 0 0\n1 1 1\n"},
		{"size too small", "LUT_1D_SIZE 1\n0 0 0\n"},
		{"header args", "LUT_3D_SIZE 2 2\n"},
		{"two headers", "LUT_1D_SIZE 2\nLUT_1D_SIZE 2\n0 0 0\n1 1 1\n"},
		{"two values", "LUT_1D_SIZE 2\n0 0\n1 1 1\n"},
		{"not a number", "LUT_1D_SIZE 2\n0 0 x\n1 1 1\n"},
		{"too many entries", "LUT_1D_SIZE 2\n0 0 0\n0.5 0.5 0.5\n1 1 1\n"},
		{"3D short", "LUT_3D_SIZE 2\n0 0 0\n1 0 0\n0 1 0\n1 1 0\n"},
		{"odd domain", "LUT_1D_SIZE 2\nDOMAIN_MAX 2 2 2\n0 0 0\n1 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read("x", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoadFailure))
		})
	}
}

func TestReadToleratesCubeExtras(t *testing.T) {
	input := `# Created by hand
TITLE "Tiny"

LUT_1D_SIZE 3
DOMAIN_MIN 0 0 0
DOMAIN_MAX 1 1 1
0 0 0
# midpoint
0.5 0.25 0.125
1 1 1
`
	c, err := Read("tiny", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Size)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 0.25, 0.125, 1, 1, 1}, c.Data)
}

func TestWriteFormat(t *testing.T) {
	c := New("x", []float32{0, 0.25, 0.5, 1, 1.5, -0.125}, 2, false)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Equal(t, "LUT_1D_SIZE 2\n0 0.25 0.5\n1 1.5 -0.125\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	tables := []CLUT{
		New("odd", []float32{0.1, 0.2, 0.3, 0.333333, 0.7777777, 1.2}, 2, false),
		Warm1D(17),
		Vintage3D(5),
		HighContrast3D(3),
	}

	for _, c := range tables {
		path := filepath.Join(t.TempDir(), "rt.cube")
		require.NoError(t, c.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err, c.Name)
		assert.Equal(t, c.Size, got.Size)
		assert.Equal(t, c.Is3D, got.Is3D)
		assert.Equal(t, c.Data, got.Data, c.Name)
		assert.Equal(t, "rt", got.Name)
	}
}

func TestRoundTripPreset3DPreservesOrdering(t *testing.T) {
	c := Sepia3D(4)
	path := filepath.Join(t.TempDir(), "sepia.cube")
	require.NoError(t, c.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, got.Data, 4*4*4*3)
	assert.Equal(t, c.Data, got.Data)

	// Second data line is r=1 (red fastest), g=0, b=0
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	assert.Equal(t, "LUT_3D_SIZE 4", lines[0])
	want := c.At(c.Index3D(1, 0, 0))
	assert.Equal(t, strings.Join([]string{formatFloat(want[0]), formatFloat(want[1]), formatFloat(want[2])}, " "), lines[2])
}
