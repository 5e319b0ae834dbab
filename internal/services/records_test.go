package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFieldAliasOrder(t *testing.T) {
	record := StudentRecord{
		"full name of the student": "Priya Sharma",
		"Name":                     "P. Sharma",
	}

	assert.Equal(t, "Priya Sharma", ResolveField(record, nameAliases, "fallback"))
}

func TestResolveFieldSkipsEmptyValues(t *testing.T) {
	record := StudentRecord{
		"full name of the student": "",
		"Name":                     "P. Sharma",
	}

	assert.Equal(t, "P. Sharma", ResolveField(record, nameAliases, "fallback"))
}

func TestStudentFieldFallbacks(t *testing.T) {
	record := StudentRecord{"skills": "python"}

	assert.Equal(t, "Student 1", StudentName(record, 0))
	assert.Equal(t, "Student 4", StudentName(record, 3))
	assert.Equal(t, "S1000", StudentRollNumber(record, 0))
	assert.Equal(t, "S1002", StudentRollNumber(record, 2))
	assert.Equal(t, "", StudentEmail(record))
}

func TestStudentFieldResolution(t *testing.T) {
	record := StudentRecord{
		"Name":        "Alice Chen",
		"Roll_Number": "R-042",
		"email":       "alice@example.com",
	}

	assert.Equal(t, "Alice Chen", StudentName(record, 7))
	assert.Equal(t, "R-042", StudentRollNumber(record, 7))
	assert.Equal(t, "alice@example.com", StudentEmail(record))
}

func TestFlattenRecord(t *testing.T) {
	record := StudentRecord{
		"skills": "python sql",
		"Name":   "Alice",
		"notes":  "",
	}

	assert.Equal(t, "Alice python sql", FlattenRecord(record))
}

func TestSerializeRecord(t *testing.T) {
	record := StudentRecord{
		"skills": "python",
		"Name":   "Alice",
		"email":  "alice@example.com",
		"notes":  "",
	}

	// Keys sorted, empty values dropped.
	assert.Equal(t, "Name: Alice, email: alice@example.com, skills: python", SerializeRecord(record))
}
