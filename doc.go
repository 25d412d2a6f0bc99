// Package bottle compiles bottle schemas into binary codecs.
//
// A schema document declares enumerations and blocks. A block is a
// record of int, float, string and enum fields, optionally followed by
// a discriminated union of nested blocks:
//
//	name: Demo
//	enums:
//	  Color: [Red, Green, Blue]
//	  ShapeKind: [circle, square]
//	blocks:
//	  Pixel:
//	    color: Color
//	    x: int
//	    y: int
//	  Shape:
//	    label: {type: string, len: 32}
//	    children:
//	      enum: ShapeKind
//	      circle: {radius: float}
//	      square: {side: float}
//
// Documents may also be written as JSON.
//
// The wire format of a block is the concatenation of its fields in
// declaration order. Ints and floats are 4 bytes, little-endian. An
// enum field is the 4 byte little-endian ordinal of its variant. A
// string is a one byte length followed by that many bytes, so strings
// hold at most 255 bytes. A union is a one byte discriminant followed
// by the fields of the selected variant. The discriminant is the
// position of the variant in the union's declaration order, which may
// differ from the variant's ordinal in the union's enum: reordering a
// union's variants changes its wire format.
//
// [Parse] loads a [Schema] from a document. [Generate] walks a Schema
// with a [Backend] to produce code. The reference backend, in
// internal/gogen, emits Go types with buffer and stream codecs built
// on package fragments. [Block.Marshal] and [Block.Unmarshal]
// interpret the wire format directly from a Schema, without
// generating code.
package bottle
