// Package array provides dense 1D, 2D and 3D numeric grids with conversion
// from raw binary input and a self-describing persisted format.
//
// # Cell Layout
//
// Extents are written in (x, y, z) order and cells are stored in raster
// order: x varies fastest, then y, then z. A 3D array is therefore a stack of
// contiguous 2D planes, one per z index, and a raw volume file is the
// concatenation of its slice files.
//
// # Reading Raw Data
//
//	f, _ := os.Open("scan.raw")
//	defer f.Close()
//	ext, _ := array.NewExtent(256, 256)
//	a, err := array.ReadRaw(f, array.RawSpec{
//		Encoding: element.Uint16,
//		Extent:   ext,
//		Header:   array.GuessHeader(),
//	})
//
// # Assembling Volumes
//
// [AssembleSlices] builds a 3D array from numbered 2D raw files:
//
//	slice, _ := array.NewExtent(512, 512)
//	vol, err := array.AssembleSlices(afero.NewOsFs(), "slice%03d.raw", 40, slice, element.Uint8)
//
// # Persisted Format
//
// [Array.Save] writes a short ASCII header followed by the encoded payload:
//
//	QA<rank>\n
//	<encoding name>\n
//	<x> [<y> [<z>]]\n
//	<filters>\n
//	<payload>
//
// The payload holds every cell in raster order as little-endian elements of
// the declared encoding, passed through the filter chain named on the fourth
// line ("-" for none). [Load] and [Decode] reverse the process and reject
// any file whose payload does not match the header exactly.
package array
