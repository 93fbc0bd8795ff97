// internal/pkg/messaging/link.go
package messaging

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

// DefaultBaseURL is the click-to-chat endpoint orders are opened with
const DefaultBaseURL = "https://wa.me/"

var ErrInvalidContact = errors.New("contact has no dialable digits")

// componentUnescaper restores the characters encodeURIComponent leaves as-is
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// LinkBuilder builds links that open a chat with a prefilled message
type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder creates a link builder for the given chat endpoint
func NewLinkBuilder(baseURL string) *LinkBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LinkBuilder{baseURL: baseURL}
}

// Link returns the chat link for contact with message prefilled
func (b *LinkBuilder) Link(contact, message string) (string, error) {
	digits := NormalizeContact(contact)
	if digits == "" {
		return "", ErrInvalidContact
	}
	return b.baseURL + digits + "?text=" + EncodeComponent(message), nil
}

// NormalizeContact strips everything but digits from a phone number
func NormalizeContact(contact string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, contact)
}

// EncodeComponent percent-encodes s the way encodeURIComponent does
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
