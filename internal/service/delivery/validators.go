package delivery

import "strings"

const (
	minStars = 1
	maxStars = 5
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isValidStars(stars int) bool {
	return stars >= minStars && stars <= maxStars
}
