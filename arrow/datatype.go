package arrow

// TimeUnit is the resolution of a temporal logical type.
type TimeUnit int

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

// UnionMode distinguishes Parquet/Arrow's two union physical layouts.
type UnionMode int

const (
	SparseMode UnionMode = iota
	DenseMode
)

// ID enumerates the leaf and composite type constructors of the DataType
// recursive sum type (spec.md section 3).
type ID int

const (
	NULL ID = iota
	BOOL
	INT8
	INT16
	INT32
	INT64
	UINT8
	UINT16
	UINT32
	UINT64
	FLOAT32
	FLOAT64
	UTF8
	LARGE_UTF8
	BINARY
	LARGE_BINARY
	FIXED_SIZE_BINARY
	DATE32
	DATE64
	TIME32
	TIME64
	TIMESTAMP
	DURATION
	LIST
	LARGE_LIST
	FIXED_SIZE_LIST
	STRUCT
	UNION
	DICTIONARY
)

// DataType is the recursive logical type tree described in spec.md section 3.
type DataType interface {
	ID() ID
	String() string
}

// Field names one child slot of a Struct/Union/List, or a top-level column,
// carrying the nullability and metadata Parquet's Repetition needs.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
	Metadata map[string]string
}

// Schema groups the fields that make up a row group's worth of columns.
type Schema struct {
	Fields   []Field
	Metadata map[string]string
}

// --- leaf physical types ---

type primitiveType struct {
	id   ID
	name string
}

func (p primitiveType) ID() ID        { return p.id }
func (p primitiveType) String() string { return p.name }

var (
	Null    DataType = primitiveType{NULL, "null"}
	Boolean DataType = primitiveType{BOOL, "bool"}
	Int8    DataType = primitiveType{INT8, "int8"}
	Int16   DataType = primitiveType{INT16, "int16"}
	Int32   DataType = primitiveType{INT32, "int32"}
	Int64   DataType = primitiveType{INT64, "int64"}
	Uint8   DataType = primitiveType{UINT8, "uint8"}
	Uint16  DataType = primitiveType{UINT16, "uint16"}
	Uint32  DataType = primitiveType{UINT32, "uint32"}
	Uint64  DataType = primitiveType{UINT64, "uint64"}
	Float32 DataType = primitiveType{FLOAT32, "float32"}
	Float64 DataType = primitiveType{FLOAT64, "float64"}
	Utf8      DataType = primitiveType{UTF8, "utf8"}
	LargeUtf8 DataType = primitiveType{LARGE_UTF8, "large_utf8"}
	Binary      DataType = primitiveType{BINARY, "binary"}
	LargeBinary DataType = primitiveType{LARGE_BINARY, "large_binary"}
	Date32 DataType = primitiveType{DATE32, "date32"}
	Date64 DataType = primitiveType{DATE64, "date64"}
)

// FixedSizeBinaryType is FixedSizeBinary(k) from spec.md section 3.
type FixedSizeBinaryType struct{ ByteWidth int }

func (FixedSizeBinaryType) ID() ID            { return FIXED_SIZE_BINARY }
func (t FixedSizeBinaryType) String() string  { return "fixed_size_binary" }

// Time32Type is Time32(unit).
type Time32Type struct{ Unit TimeUnit }

func (Time32Type) ID() ID           { return TIME32 }
func (Time32Type) String() string   { return "time32" }

// Time64Type is Time64(unit).
type Time64Type struct{ Unit TimeUnit }

func (Time64Type) ID() ID         { return TIME64 }
func (Time64Type) String() string { return "time64" }

// TimestampType is Timestamp(unit, tz).
type TimestampType struct {
	Unit     TimeUnit
	Timezone string
}

func (TimestampType) ID() ID         { return TIMESTAMP }
func (TimestampType) String() string { return "timestamp" }

// DurationType is Duration(unit).
type DurationType struct{ Unit TimeUnit }

func (DurationType) ID() ID         { return DURATION }
func (DurationType) String() string { return "duration" }

// --- composite constructors ---

// ListType is List(child) (offset width int32) / LargeList (offset width int64).
type ListType struct {
	Elem  Field
	Large bool
}

func (l ListType) ID() ID {
	if l.Large {
		return LARGE_LIST
	}
	return LIST
}
func (ListType) String() string { return "list" }

// FixedSizeListType is FixedSizeList(child, n).
type FixedSizeListType struct {
	Elem Field
	N    int
}

func (FixedSizeListType) ID() ID         { return FIXED_SIZE_LIST }
func (FixedSizeListType) String() string { return "fixed_size_list" }

// StructType is Struct(fields).
type StructType struct{ Fields []Field }

func (StructType) ID() ID         { return STRUCT }
func (StructType) String() string { return "struct" }

func (s StructType) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UnionType is Union(fields, mode, type_ids).
type UnionType struct {
	Fields  []Field
	Mode    UnionMode
	TypeIDs []int8
}

func (UnionType) ID() ID         { return UNION }
func (UnionType) String() string { return "union" }

// DictionaryType is Dictionary(IntegerKey, value_type, is_ordered).
type DictionaryType struct {
	IndexType DataType
	ValueType DataType
	Ordered   bool
}

func (DictionaryType) ID() ID         { return DICTIONARY }
func (DictionaryType) String() string { return "dictionary" }
