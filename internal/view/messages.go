package view

import (
	"fmt"
	"html/template"
)

// MessageKind selects the styling of a notification message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageInfo    MessageKind = "info"
	MessageError   MessageKind = "error"
)

// Message is one entry for the notification container.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// RenderMessage produces the message fragment for the notification container.
// A zero message renders nothing.
func RenderMessage(m Message) string {
	if m.Text == "" {
		return ""
	}
	return fmt.Sprintf(`<div class="message message-%s">%s</div>`, m.Kind, template.HTMLEscapeString(m.Text))
}
