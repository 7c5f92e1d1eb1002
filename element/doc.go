// Package element provides the on-disk element encodings of raw grids and
// their conversion to and from working-precision cells.
//
// Every cell of an array is held in memory as a float64, which is wide enough
// to represent every supported encoding except the extreme ends of the 64-bit
// integer ranges. This package bridges those cells and the fixed-width byte
// representations found in raw files and persisted arrays:
//
//   - Determine the byte width of an encoding
//   - Decode raw bytes to float64 cells
//   - Encode float64 cells to raw bytes
//   - Reverse the byte order of a buffer of fixed-width units
//
// # Encoding Table
//
//	Code | Name    | Short | Width
//	-----|---------|-------|------
//	0    | uint8   | u8    | 1
//	1    | int8    | i8    | 1
//	2    | uint16  | u16   | 2
//	3    | int16   | i16   | 2
//	4    | uint32  | u32   | 4
//	5    | int32   | i32   | 4
//	6    | uint64  | u64   | 8
//	7    | int64   | i64   | 8
//	8    | float32 | f32   | 4
//	9    | float64 | f64   | 8
//
// # Reading Data
//
// Use [DecodeAll] to convert a buffer of raw bytes into cells:
//
//	cells := make([]float64, n)
//	err := element.DecodeAll(cells, raw, element.Uint16, binary.LittleEndian)
//
// # Writing Data
//
// Use [EncodeAll] to convert cells back into bytes. Integer targets round to
// the nearest integer and saturate at the bounds of the target type:
//
//	raw, err := element.EncodeAll(cells, element.Int8, binary.LittleEndian)
//
// # Key Functions
//
//   - [Parse]: Resolves a code or name to an [Encoding]
//   - [WidthOf]: Returns the byte width of an encoding
//   - [Decode], [DecodeAll]: Bytes to cells
//   - [Encode], [EncodeAll]: Cells to bytes
//   - [InvertByteOrder]: Reverses bytes within each fixed-width unit
package element
