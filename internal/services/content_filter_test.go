package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilterCheck(t *testing.T) {
	filter := NewContentFilter()

	tests := []struct {
		name       string
		text       string
		ok         bool
		wantReason string
	}{
		{name: "clean text", text: "see you at the park at noon", ok: true},
		{name: "empty text", text: "", ok: true},
		{name: "banned word", text: "you are such a bastard", ok: false, wantReason: "inappropriate_language"},
		{name: "banned word case insensitive", text: "SPAM offer inside", ok: false, wantReason: "inappropriate_language"},
		{name: "banned word inside word passes", text: "the classic assassin film", ok: true},
		{name: "http url", text: "click http://evil.example/login", ok: false, wantReason: "url_not_allowed"},
		{name: "www url", text: "go to www.evil.example now", ok: false, wantReason: "url_not_allowed"},
		{name: "phone number", text: "call me at 555-123-4567", ok: false, wantReason: "contact_info_not_allowed"},
		{name: "repeated characters", text: "heyyyyy what is up", ok: false, wantReason: "spam_detected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := filter.Check(tt.text)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, tt.wantReason, reason)
			}
		})
	}
}

func TestRejectionMessage(t *testing.T) {
	filter := NewContentFilter()

	assert.Equal(t, "URLs and web links are not allowed in messages.", filter.RejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your message does not meet our content guidelines.", filter.RejectionMessage("unknown_reason"))
}
