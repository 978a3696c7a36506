package dicomdir

import "github.com/suyashkumar/dicom/pkg/tag"

// Structured Report tags used while walking the content tree.
var (
	// ConceptNameCodeSequence (0040,A043) names the concept a content
	// item carries.
	tagConceptNameCodeSequence = tag.Tag{Group: 0x0040, Element: 0xA043}

	// CodeMeaning (0008,0104) is the human-readable concept name.
	tagCodeMeaning = tag.Tag{Group: 0x0008, Element: 0x0104}

	// ContentSequence (0040,A730) is the nested content of an item.
	tagContentSequence = tag.Tag{Group: 0x0040, Element: 0xA730}

	// MeasuredValueSequence (0040,A300) wraps a numeric measurement.
	tagMeasuredValueSequence = tag.Tag{Group: 0x0040, Element: 0xA300}

	// NumericValue (0040,A30A) is the magnitude inside a measurement.
	tagNumericValue = tag.Tag{Group: 0x0040, Element: 0xA30A}

	// TextValue (0040,A160) carries free text.
	tagTextValue = tag.Tag{Group: 0x0040, Element: 0xA160}

	// DateTime (0040,A120) carries a raw date-time string.
	tagDateTime = tag.Tag{Group: 0x0040, Element: 0xA120}

	// UID (0040,A124) carries a unique identifier.
	tagUID = tag.Tag{Group: 0x0040, Element: 0xA124}

	// PersonName (0040,A123) carries a person name.
	tagPersonName = tag.Tag{Group: 0x0040, Element: 0xA123}
)
