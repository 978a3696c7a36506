package domain

// ValueKind discriminates the value carried by a content node.
// A node carries at most one kind; ValueAbsent means the node has
// a concept code but no usable value.
type ValueKind int

const (
	// ValueAbsent indicates the node carries no extractable value.
	ValueAbsent ValueKind = iota

	// ValueNumeric is a measured value with a numeric magnitude.
	ValueNumeric

	// ValueText is free text.
	ValueText

	// ValueDateTime is a raw date-time string.
	ValueDateTime

	// ValueIdentifier is a unique identifier string.
	ValueIdentifier

	// ValuePersonName is a person name string.
	ValuePersonName
)

// ConceptValue is the tagged union of value kinds a content node can carry.
// Exactly one representation is populated according to Kind.
type ConceptValue struct {
	// Kind selects the populated representation.
	Kind ValueKind

	// Num holds the magnitude for ValueNumeric.
	Num float64

	// Str holds the raw string for the four string-like kinds.
	Str string
}

// Absent returns the zero ConceptValue.
func Absent() ConceptValue {
	return ConceptValue{Kind: ValueAbsent}
}

// Numeric wraps a measured numeric magnitude.
func Numeric(v float64) ConceptValue {
	return ConceptValue{Kind: ValueNumeric, Num: v}
}

// Text wraps a free-text value.
func Text(s string) ConceptValue {
	return ConceptValue{Kind: ValueText, Str: s}
}

// DateTime wraps a raw date-time string.
func DateTime(s string) ConceptValue {
	return ConceptValue{Kind: ValueDateTime, Str: s}
}

// Identifier wraps a unique identifier string.
func Identifier(s string) ConceptValue {
	return ConceptValue{Kind: ValueIdentifier, Str: s}
}

// PersonName wraps a person name string.
func PersonName(s string) ConceptValue {
	return ConceptValue{Kind: ValuePersonName, Str: s}
}

// IsAbsent reports whether the value carries nothing extractable.
func (v ConceptValue) IsAbsent() bool {
	return v.Kind == ValueAbsent
}

// ContentNode is one node of a report's coded content tree.
// A node may carry a concept name, a value of exactly one kind,
// and any number of child nodes. A node without a concept name is
// still traversed for its children.
type ContentNode struct {
	// ConceptName is the resolved code meaning, empty when the node
	// carries no concept-code annotation.
	ConceptName string

	// Value is the node's typed value (possibly absent).
	Value ConceptValue

	// Children is the ordered nested content.
	Children []ContentNode
}

// Document is one parsed dose report: its content tree plus the
// top-level attributes that carry concept values outside the tree.
type Document struct {
	// URI is the original location (file path).
	URI string

	// Content is the ordered top-level content sequence.
	Content []ContentNode

	// Attributes maps concept names to top-level attribute values,
	// already coerced to strings by the document source.
	Attributes map[string]string
}

// DocumentFailure records one input that could not be parsed.
// The batch continues past it.
type DocumentFailure struct {
	// Path is the file that failed.
	Path string

	// Err is the underlying parse error.
	Err error
}

// LoadReport summarises one load operation.
type LoadReport struct {
	// BatchID uniquely identifies the load.
	BatchID string

	// Folder is the scanned root.
	Folder string

	// Loaded is the number of records appended to the collection.
	Loaded int

	// SkippedEmpty counts documents whose extraction produced no values.
	SkippedEmpty int

	// Failures lists documents that could not be parsed.
	Failures []DocumentFailure
}
