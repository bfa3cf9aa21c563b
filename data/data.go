// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides dataset acquisition and batching: a named
// download hub with SHA-1 verified caching, archive extraction and the
// English-French translation pipeline.
package data

import (
	"github.com/d2l-ai/d2l-go/internal/data"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// HubEntry describes one downloadable dataset.
type HubEntry = data.HubEntry

// DataHub maps dataset names to their download locations.
var DataHub = data.DataHub

// Download fetches a named dataset into cacheDir and returns the local
// file path, skipping the download when a cached copy matches the
// expected SHA-1 digest.
func Download(name, cacheDir string) (string, error) {
	return data.Download(name, cacheDir)
}

// DownloadExtract downloads a named archive and extracts it next to the
// cached file, returning the extraction directory.
func DownloadExtract(name, cacheDir string) (string, error) {
	return data.DownloadExtract(name, cacheDir)
}

// Extract unpacks a .zip, .tar, .tar.gz or .gz archive into dest,
// panicking on any other format.
func Extract(archive, dest string) error {
	return data.Extract(archive, dest)
}

// TranslationCorpus holds a tokenized parallel corpus and its
// vocabularies.
type TranslationCorpus = data.TranslationCorpus

// PreprocessNMT normalizes raw translation text: non-breaking spaces
// become plain spaces, everything is lowercased, and a space is
// inserted before unseparated punctuation.
func PreprocessNMT(raw string) string {
	return data.PreprocessNMT(raw)
}

// TokenizeNMT splits preprocessed tab-separated text into parallel
// source and target token sequences.
func TokenizeNMT(preprocessed string, maxExamples int) (source, target [][]string) {
	return data.TokenizeNMT(preprocessed, maxExamples)
}

// NewTranslationCorpus preprocesses and tokenizes raw translation text
// and builds both vocabularies.
func NewTranslationCorpus(raw string, maxExamples, minFreq int) *TranslationCorpus {
	return data.NewTranslationCorpus(raw, maxExamples, minFreq)
}

// LoadFraEng downloads the English-French corpus into cacheDir and
// returns its raw text.
func LoadFraEng(cacheDir string) (string, error) {
	return data.LoadFraEng(cacheDir)
}

// BuildTranslationArrays converts a corpus into padded index tensors
// plus per-sequence valid lengths, ready for batching.
func BuildTranslationArrays[B tensor.Backend](c *TranslationCorpus, numSteps int, backend B) (src, tgt *tensor.Tensor[int32, B], srcLens, tgtLens []int) {
	return data.BuildTranslationArrays(c, numSteps, backend)
}

// Batch is one minibatch of a parallel corpus.
type Batch[B tensor.Backend] = data.Batch[B]

// Loader yields shuffled minibatches from padded corpus arrays.
type Loader[B tensor.Backend] = data.Loader[B]

// NewLoader creates a batch loader over padded arrays.
func NewLoader[B tensor.Backend](src, tgt *tensor.Tensor[int32, B], srcLens, tgtLens []int, batchSize int, seed int64, backend B) *Loader[B] {
	return data.NewLoader(src, tgt, srcLens, tgtLens, batchSize, seed, backend)
}
