// Package smizip provides a domain-specialized byte-level compressor for
// SMILES (chemical line notation) strings.
//
// # Overview
//
// The compressor replaces each input string with a sequence of single
// bytes. Each byte value 0..255 is bound to a token drawn from a fixed
// 256-entry Dictionary: either one source character or a multi-character
// n-gram ("multigram"). Decompression is a table lookup; compression finds
// the tokenization with the fewest tokens via Aho-Corasick matching plus a
// shortest-path dynamic program.
//
// # Basic Usage
//
//	dict, err := smizip.LoadExample("minimal")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	zipped, err := dict.Zip("c1ccccc1C(=O)Cl", smizip.FormatBytes)
//	unzipped := dict.Unzip(zipped.([]byte))
//
// # Training a Dictionary
//
//	corpus := smizip.NewSliceCorpus(smiles)
//	learner := smizip.NewLearner(corpus, initialChars, smizip.WithSpeed(smizip.SpeedFast))
//	dict, meta, err := learner.Learn(context.Background())
//	data, err := smizip.MarshalDictionary(dict, meta)
//
// # Tradeoffs
//
// Compared to general-purpose compressors (gzip, zstd), this format trades
// compression ratio for a trivial decoder: decompression is one table
// lookup per byte into a single output buffer, with no entropy coding and no self
// -describing framing. The dictionary is always conveyed out of band.
package smizip
