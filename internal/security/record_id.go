package security

import "regexp"

const (
	RecordIDLength   = 24
	recordIDAlphabet = "0123456789abcdef"
)

var recordIDPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

// NewRecordID returns a random lowercase hex identifier shaped like the ids
// the Living Apps store assigns, so local and remote records share one format.
func NewRecordID() (string, error) {
	return RandomString(RecordIDLength, recordIDAlphabet)
}

func IsRecordID(value string) bool {
	return recordIDPattern.MatchString(value)
}
