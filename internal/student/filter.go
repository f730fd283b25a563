package student

import "strings"

// Filter returns the students whose name or school-issued ID contains the
// query as a case-insensitive substring. An empty query returns the input
// unchanged; insertion order is always preserved, so filtering an already
// filtered result with the same query is a no-op.
func Filter(students []Student, query string) []Student {
	if query == "" {
		return students
	}
	q := strings.ToLower(query)
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.StudentID), q) {
			out = append(out, s)
		}
	}
	return out
}
