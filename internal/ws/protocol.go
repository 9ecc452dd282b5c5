package ws

import (
	"encoding/json"

	"github.com/idilsaglam/board/internal/model"
)

type MessageType string

const (
	// server -> client
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"

	// client -> server
	MsgAdd  MessageType = "add"
	MsgMove MessageType = "move"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

type SnapshotPayload struct {
	Projects []model.Project `json:"projects"`
}

type ErrorPayload struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Command is a client frame; Payload is decoded according to Type.
type Command struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type AddRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

type MoveRequest struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}
