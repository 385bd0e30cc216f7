package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a course title into a URL-safe slug ("Django 101" -> "django-101")
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateStudentID generates a registration number for a new student profile
func GenerateStudentID() string {
	id := uuid.New().String()
	return "STU-" + strings.ToUpper(id[:8])
}
