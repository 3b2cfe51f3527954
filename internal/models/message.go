// Package models defines the data shared by the chat panel, the assistant
// client and the assistant service.
package models

import "fmt"

// Role tags the author of a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Label returns the display label for the role
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Message represents one entry of the chat transcript
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user entry
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant entry
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}

// ChatRequest is the JSON body posted to the assistant endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by the assistant endpoint on success
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the JSON body returned by the assistant endpoint on failure
type ErrorResponse struct {
	Detail string `json:"detail"`
}
