package install

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explodedBundle(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "org.sample_1.0.0")
	writeFile(t, filepath.Join(dir, "META-INF", "MANIFEST.MF"), "Manifest-Version: 1.0\n")
	writeFile(t, filepath.Join(dir, "about.html"), "<html/>")
	writeZip(t, filepath.Join(dir, "lib", "one.jar"), "org/", "org/One.class", "shared.txt")
	writeZip(t, filepath.Join(dir, "lib", "two.jar"), "org/Two.class", "shared.txt")
	return dir
}

func TestRepack_Deterministic(t *testing.T) {
	dir := explodedBundle(t)
	r, err := newRepacker(t.TempDir(), DefaultNestedArchivePattern)
	require.NoError(t, err)

	first, err := r.repack(dir)
	require.NoError(t, err)
	firstDigest, err := digestOf(first)
	require.NoError(t, err)

	// Touch a file so only the modification time changes.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "about.html"), later, later))

	second, err := r.repack(dir)
	require.NoError(t, err)
	secondDigest, err := digestOf(second)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, firstDigest, secondDigest)
}

func TestRepack_FlattenOrderAndDuplicates(t *testing.T) {
	dir := explodedBundle(t)
	r, err := newRepacker(t.TempDir(), DefaultNestedArchivePattern)
	require.NoError(t, err)

	out, err := r.repack(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"META-INF/MANIFEST.MF",
		"about.html",
		"org/One.class",
		"shared.txt",
		"org/Two.class",
	}, zipEntries(t, out))
}

func TestRepack_CustomPattern(t *testing.T) {
	dir := explodedBundle(t)
	r, err := newRepacker(t.TempDir(), "lib/one.jar")
	require.NoError(t, err)

	out, err := r.repack(dir)
	require.NoError(t, err)

	entries := zipEntries(t, out)
	assert.Contains(t, entries, "org/One.class")
	assert.Contains(t, entries, "lib/two.jar")
	assert.NotContains(t, entries, "org/Two.class")
}

func TestRepack_BundleInsideTempDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "org.exploded_1.0.0")
	writeFile(t, filepath.Join(dir, "META-INF", "MANIFEST.MF"), "Manifest-Version: 1.0\n")
	writeFile(t, filepath.Join(dir, "plugin.xml"), "<plugin/>")

	r, err := newRepacker(tmp, DefaultNestedArchivePattern)
	require.NoError(t, err)
	out, err := r.repack(dir)
	require.NoError(t, err)

	assert.NotEqual(t, dir, out)
	assert.DirExists(t, dir)
	assert.FileExists(t, filepath.Join(dir, "META-INF", "MANIFEST.MF"))
	assert.FileExists(t, filepath.Join(dir, "plugin.xml"))
	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "plugin.xml"}, zipEntries(t, out))
}

func TestRepack_OwnFilesWinOverNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "org.host_1.0.0")
	// Sorts before META-INF, so it is walked first.
	writeZip(t, filepath.Join(dir, "Embedded.jar"), "META-INF/MANIFEST.MF", "org/Embedded.class")
	writeFile(t, filepath.Join(dir, "META-INF", "MANIFEST.MF"), "Bundle-SymbolicName: org.host\n")

	r, err := newRepacker(t.TempDir(), "*.jar")
	require.NoError(t, err)
	out, err := r.repack(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "org/Embedded.class"}, zipEntries(t, out))
	assert.Equal(t, "Bundle-SymbolicName: org.host\n", zipEntry(t, out, "META-INF/MANIFEST.MF"))
}

func TestRepack_FailureLeavesNothingBehind(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "org.corrupt_1.0.0")
	writeFile(t, filepath.Join(dir, "lib", "broken.jar"), "not a zip")
	tmp := t.TempDir()

	r, err := newRepacker(tmp, DefaultNestedArchivePattern)
	require.NoError(t, err)
	_, err = r.repack(dir)
	assert.ErrorContains(t, err, "repack "+dir)

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left)
}
