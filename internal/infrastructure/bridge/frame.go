// Package bridge carries host and tab-side calls to the browser extension
// over a single WebSocket connection, and hands the extension's own requests
// and events to an Inbound handler.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reklai/harpoon-telescope/internal/application/port"
)

// Frame kinds.
const (
	KindRequest  = "request"
	KindResponse = "response"
	KindEvent    = "event"
)

// Calls sent to the extension.
const (
	CallQueryTabs         = "query_tabs"
	CallActiveTab         = "active_tab"
	CallCreateTab         = "create_tab"
	CallActivateTab       = "activate_tab"
	CallGetScroll         = "get_scroll"
	CallSetScroll         = "set_scroll"
	CallNotify            = "notify"
	CallShowRestorePrompt = "show_restore_prompt"
)

// Error codes the extension puts in failed responses.
const (
	CodeNoTab      = "no_tab"
	CodeNoListener = "no_listener"
)

// Frame is one WebSocket text message in either direction.
type Frame struct {
	ID      string          `json:"id,omitempty"`
	Kind    string          `json:"kind"`
	Type    string          `json:"type,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	OK      bool            `json:"ok,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Reply answers an extension request. Error carries the user-facing reason
// when OK is false.
type Reply struct {
	OK    bool
	Error string
	Data  any
}

// Inbound handles a raw request or event frame from the extension. A nil
// reply sends nothing back.
type Inbound func(ctx context.Context, raw []byte) *Reply

type tabPayload struct {
	TabID int64 `json:"tab_id"`
}

type createPayload struct {
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

type scrollPayload struct {
	TabID int64   `json:"tab_id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type notifyPayload struct {
	TabID   int64  `json:"tab_id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func responseError(callType, code string) error {
	switch code {
	case CodeNoTab:
		return port.ErrTabNotFound
	case CodeNoListener:
		return port.ErrNoListener
	case "":
		return fmt.Errorf("%s failed", callType)
	default:
		return fmt.Errorf("%s: %s", callType, code)
	}
}
