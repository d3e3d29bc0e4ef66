package transcript

import "errors"

var (
	// ErrLineOutOfRange is returned when an edit range does not fit the file.
	ErrLineOutOfRange = errors.New("line range out of bounds")

	// ErrInvalidUTF8 is returned when a transcript is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("transcript is not valid UTF-8")

	// ErrStaleSegment is returned by EditSegment when the file no longer holds
	// the segment the caller parsed.
	ErrStaleSegment = errors.New("segment no longer matches transcript")

	// ErrEmptyText is returned when replacement text is blank.
	ErrEmptyText = errors.New("replacement text is empty")

	// ErrBlankLineInText is returned when replacement text would end the cue early.
	ErrBlankLineInText = errors.New("replacement text contains a blank line")

	// ErrCueHeaderInText is returned when replacement text contains a cue timing line.
	ErrCueHeaderInText = errors.New("replacement text contains a cue header")

	// ErrInvalidTimestamp is returned for timestamps outside the MM:SS.mmm grammar.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
