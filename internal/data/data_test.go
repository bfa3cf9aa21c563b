package data_test

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/internal/data"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "corpus.zip")
	writeZip(t, archive, map[string]string{
		"corpus/fra.txt": "go .\tva !\n",
	})

	require.NoError(t, data.Extract(archive, dir))

	content, err := os.ReadFile(filepath.Join(dir, "corpus", "fra.txt"))
	require.NoError(t, err)
	assert.Equal(t, "go .\tva !\n", string(content))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "corpus.tar.gz")

	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	body := []byte("hello tar\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "dir/hello.txt", Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg,
	}))
	_, err = tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	require.NoError(t, data.Extract(archive, dir))

	content, err := os.ReadFile(filepath.Join(dir, "dir", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello tar\n", string(content))
}

func TestExtractGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "notes.txt.gz")

	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("plain gz\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	require.NoError(t, data.Extract(archive, dir))

	content, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "plain gz\n", string(content))
}

func TestExtractUnsupportedPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = data.Extract("model.rar", t.TempDir())
	})
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{
		"../escape.txt": "nope",
	})

	assert.Error(t, data.Extract(archive, filepath.Join(dir, "out")))
}

func TestDownloadAndCache(t *testing.T) {
	payload := []byte("the corpus body")
	digest := sha1.Sum(payload)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	name := "test-corpus"
	data.DataHub[name] = data.HubEntry{
		URL:  server.URL + "/corpus.txt",
		SHA1: hex.EncodeToString(digest[:]),
	}
	defer delete(data.DataHub, name)

	dir := t.TempDir()
	path, err := data.Download(name, dir)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, content)
	assert.Equal(t, 1, hits)

	// A second download is served from the cache.
	_, err = data.Download(name, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "matching cached file should skip the fetch")
}

func TestDownloadWithoutChecksum(t *testing.T) {
	payload := []byte("unverified body")

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	name := "no-checksum-corpus"
	data.DataHub[name] = data.HubEntry{URL: server.URL + "/corpus.txt"}
	defer delete(data.DataHub, name)

	dir := t.TempDir()
	path, err := data.Download(name, dir)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, content)

	// Without a digest there is nothing to match against, so every
	// call fetches again.
	_, err = data.Download(name, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestDownloadRawURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("direct fetch"))
	}))
	defer server.Close()

	path, err := data.Download(server.URL+"/direct.txt", t.TempDir())
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "direct fetch", string(content))
	assert.Equal(t, "direct.txt", filepath.Base(path))
}

func TestDownloadChecksumMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unexpected body"))
	}))
	defer server.Close()

	name := "bad-corpus"
	data.DataHub[name] = data.HubEntry{
		URL:  server.URL + "/corpus.txt",
		SHA1: "0000000000000000000000000000000000000000",
	}
	defer delete(data.DataHub, name)

	_, err := data.Download(name, t.TempDir())
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestDownloadUnknownName(t *testing.T) {
	_, err := data.Download("no-such-dataset", t.TempDir())
	assert.Error(t, err)
}

func TestPreprocessNMT(t *testing.T) {
	got := data.PreprocessNMT("Go now!\tVa !")
	assert.Equal(t, "go now !\tva !", got)
}

func TestPreprocessNMTKeepsSeparatedPunctuation(t *testing.T) {
	assert.Equal(t, "hi .", data.PreprocessNMT("hi ."))
}

func TestTokenizeNMT(t *testing.T) {
	src, tgt := data.TokenizeNMT("go .\tva !\nhi .\tsalut !\nmalformed line\n", 0)
	require.Len(t, src, 2)
	assert.Equal(t, []string{"go", "."}, src[0])
	assert.Equal(t, []string{"salut", "!"}, tgt[1])
}

func TestTokenizeNMTMaxExamples(t *testing.T) {
	src, _ := data.TokenizeNMT("a\tb\nc\td\ne\tf\n", 2)
	assert.Len(t, src, 2)
}

func TestNewTranslationCorpus(t *testing.T) {
	corpus := data.NewTranslationCorpus("Go now!\tVa !\nGo now!\tAllez !\n", 0, 1)
	require.Len(t, corpus.Source, 2)
	assert.NotEqual(t, 0, corpus.SrcVocab.Idx("go"))
	assert.NotEqual(t, 0, corpus.TgtVocab.Idx("va"))
}

func TestLoaderBatches(t *testing.T) {
	backend := cpu.New()
	corpus := data.NewTranslationCorpus(
		"go .\tva !\nhi .\tsalut !\nrun !\tcours !\nwait !\tattends !\n", 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 4, backend)

	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 2, 7, backend)
	require.Equal(t, 4, loader.NumExamples())
	require.Equal(t, 2, loader.NumBatches())

	seen := map[int32]bool{}
	for i := 0; i < loader.NumBatches(); i++ {
		batch := loader.Batch(i)
		require.True(t, batch.Src.Shape().Equal(tensor.Shape{2, 4}))
		require.True(t, batch.Tgt.Shape().Equal(tensor.Shape{2, 4}))
		require.Len(t, batch.SrcValidLen, 2)
		require.Len(t, batch.TgtValidLen, 2)
		for _, v := range batch.Src.Data() {
			seen[v] = true
		}
	}
	assert.NotEmpty(t, seen)

	assert.Panics(t, func() { loader.Batch(2) })
}

func TestLoaderDropsShortBatch(t *testing.T) {
	backend := cpu.New()
	corpus := data.NewTranslationCorpus("a .\tb .\nc .\td .\ne .\tf .\n", 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 3, backend)

	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 2, 1, backend)
	assert.Equal(t, 1, loader.NumBatches())
}
