package services

import (
	"fmt"
	"sort"
	"strings"
)

// Accepted header aliases per logical attribute, checked in order. Uploaded
// tables come from several student-information exports that never agree on
// column names.
var (
	nameAliases  = []string{"full name of the student", "Name", "name"}
	idAliases    = []string{"Roll_Number", "RollNumber", "ID", "StudentID"}
	emailAliases = []string{"email", "Email"}
)

// ResolveField returns the first non-empty value among the aliases, or
// fallback when none is present.
func ResolveField(record StudentRecord, aliases []string, fallback string) string {
	for _, alias := range aliases {
		if value, ok := record[alias]; ok && value != "" {
			return value
		}
	}
	return fallback
}

// StudentName resolves the display name of the record at position index.
func StudentName(record StudentRecord, index int) string {
	return ResolveField(record, nameAliases, fmt.Sprintf("Student %d", index+1))
}

// StudentRollNumber resolves the student identifier of the record at
// position index.
func StudentRollNumber(record StudentRecord, index int) string {
	return ResolveField(record, idAliases, fmt.Sprintf("S%d", 1000+index))
}

// StudentEmail resolves the email of the record, empty when absent.
func StudentEmail(record StudentRecord) string {
	return ResolveField(record, emailAliases, "")
}

// FlattenRecord concatenates every non-empty field value into one profile
// text for skill extraction.
func FlattenRecord(record StudentRecord) string {
	values := make([]string, 0, len(record))
	for _, key := range sortedKeys(record) {
		if record[key] != "" {
			values = append(values, record[key])
		}
	}
	return strings.Join(values, " ")
}

// SerializeRecord renders the record as "key: value" pairs joined by commas,
// the chunk text form for one-record-per-chunk indexing.
func SerializeRecord(record StudentRecord) string {
	pairs := make([]string, 0, len(record))
	for _, key := range sortedKeys(record) {
		if record[key] != "" {
			pairs = append(pairs, fmt.Sprintf("%s: %s", key, record[key]))
		}
	}
	return strings.Join(pairs, ", ")
}

func sortedKeys(record StudentRecord) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
