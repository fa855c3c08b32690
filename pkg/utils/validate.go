package utils

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("password must be alphanumeric, at least 8 characters, with a number and an uppercase letter")
	ErrInvalidUsername  = errors.New("username must be alphanumeric")
	ErrInvalidFirstName = errors.New("first name must be alphabetic")
	ErrInvalidLastName  = errors.New("last name must be alphabetic")
)

func CleanInput(s string) string {
	return strings.TrimSpace(s)
}

func ValidateEmail(email string) error {
	if email == "" || strings.Count(email, "@") != 1 {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 || !isAlnum(password) {
		return ErrInvalidPassword
	}
	var hasDigit, hasUpper bool
	for _, c := range password {
		if unicode.IsDigit(c) {
			hasDigit = true
		}
		if unicode.IsUpper(c) {
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" || !isAlnum(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateFirstName(name string) error {
	if name == "" || !isAlpha(name) {
		return ErrInvalidFirstName
	}
	return nil
}

func ValidateLastName(name string) error {
	if name == "" || !isAlpha(name) {
		return ErrInvalidLastName
	}
	return nil
}

func isAlnum(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}
