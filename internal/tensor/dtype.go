package tensor

// DataType is the runtime type tag of a tensor's elements.
type DataType int

// Supported data types.
//
// Float32 carries activations, parameters and gradients; Int32 carries
// token indices and argmax results.
const (
	Float32 DataType = iota
	Int32
)

// Size returns the size of one element in bytes.
func (d DataType) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	default:
		panic("tensor: unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (d DataType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// DType constrains the element types a Tensor may hold.
type DType interface {
	~float32 | ~int32
}

// inferDataType maps a Go value to its DataType tag.
func inferDataType(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case int32:
		return Int32
	default:
		panic("tensor: unsupported element type")
	}
}
