package validate

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLen  = 100
	MaxOrderLen = 300
)

// Genders are the categories offered by the registration form.
var Genders = []string{"ذكر", "أنثى", "مهندس"}

var (
	ErrRegistrationIncomplete = errors.New("name and job title are required")
	ErrUnknownGender          = errors.New("unknown gender/category")
	ErrOrderEmpty             = errors.New("order text is required")
	ErrRoomEmpty              = errors.New("room is required")
	ErrTooLong                = errors.New("value is too long")
)

// Registration trims its inputs and returns them when they are acceptable.
func Registration(name, job, gender string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	job = strings.TrimSpace(job)
	gender = strings.TrimSpace(gender)

	if name == "" || job == "" {
		return "", "", "", ErrRegistrationIncomplete
	}
	if tooLong(name, MaxNameLen) || tooLong(job, MaxNameLen) {
		return "", "", "", ErrTooLong
	}
	if !slices.Contains(Genders, gender) {
		return "", "", "", ErrUnknownGender
	}
	return name, job, gender, nil
}

func Order(room, text string) (string, string, error) {
	room = strings.TrimSpace(room)
	text = strings.TrimSpace(text)

	if text == "" {
		return "", "", ErrOrderEmpty
	}
	if room == "" {
		return "", "", ErrRoomEmpty
	}
	if tooLong(room, MaxNameLen) || tooLong(text, MaxOrderLen) {
		return "", "", ErrTooLong
	}
	return room, text, nil
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
