// Package filter implements the payload filter pipeline of persisted arrays.
//
// Filters transform the encoded cell payload after the header. When writing,
// filters are applied in pipeline order; when reading, they are applied in
// reverse order to recover the original payload. The header records the
// pipeline by name, so a reader needs no out-of-band configuration.
//
// # Supported Filters
//
//   - shuffle: Byte shuffling via [Shuffle]. Groups byte 0 of every element,
//     then byte 1, and so on, which makes multi-byte payloads compress better.
//
//   - gzip: DEFLATE compression via [Gzip] (github.com/klauspost/compress/gzip).
//
//   - zstd: Zstandard compression via [Zstd] (github.com/klauspost/compress/zstd).
//
//   - lz4: LZ4 frame compression via [LZ4] (github.com/pierrec/lz4/v4).
//
//   - fletcher32: Integrity check via [Fletcher32Filter]. Appends a 32-bit
//     Fletcher checksum on write and verifies and strips it on read.
//
// # Filter Pipeline
//
// The [Pipeline] type manages a sequence of filters:
//
//	p, err := filter.NewPipeline([]string{"shuffle", "zstd", "fletcher32"}, 4)
//	stored, err := p.Encode(payload)
//	payload, err = p.Decode(stored)
//
// The canonical order is shuffle, then at most one compressor, then the
// checksum, so the checksum covers the bytes actually stored.
package filter
