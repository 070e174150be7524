package apitypes

import "fmt"

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

// StatusResponse describes the engine state: device connectivity and the
// currently held modifiers and keys by canonical name.
type StatusResponse struct {
	Connected     bool     `json:"connected"`
	Device        string   `json:"device"`
	Modifiers     []string `json:"modifiers"`
	Keys          []string `json:"keys"`
	DroppedEvents uint64   `json:"droppedEvents"`
}

type ConnectResponse struct {
	Connected bool   `json:"connected"`
	Device    string `json:"device"`
}

type DisconnectResponse struct {
	Connected bool `json:"connected"`
}

// KeyResponse echoes the key a hold/release/press/tap operated on together
// with the held state after the operation.
type KeyResponse struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
	Keys      []string `json:"keys"`
}

type ReleaseAllResponse struct {
	Released bool `json:"released"`
}

type ComboResponse struct {
	Combo string `json:"combo"`
}

type TypeResponse struct {
	Text string `json:"text"`
}

type SequenceResponse struct {
	Completed int `json:"completed"`
}

type ReportResponse struct {
	Report string `json:"report"`
}

// KeysResponse lists every key and modifier name the server resolves,
// partitioned for display.
type KeysResponse struct {
	Letters    []string `json:"letters"`
	Digits     []string `json:"digits"`
	Function   []string `json:"function"`
	Navigation []string `json:"navigation"`
	Modifiers  []string `json:"modifiers"`
	Other      []string `json:"other"`
}

// PressRequest is the payload for key/press. HoldMs zero uses the server
// default; a nil AutoRelease uses the server default.
type PressRequest struct {
	Key         string   `json:"key"`
	Modifiers   []string `json:"modifiers,omitempty"`
	HoldMs      int      `json:"holdMs,omitempty"`
	AutoRelease *bool    `json:"autoRelease,omitempty"`
}

// TapRequest is the payload for key/tap: press a key without disturbing the
// held keys and modifiers.
type TapRequest struct {
	Key    string `json:"key"`
	HoldMs int    `json:"holdMs,omitempty"`
}

// TypeRequest is the payload for type. DelayMs zero uses the server default;
// a nil PreserveCase keeps the input casing.
type TypeRequest struct {
	Text         string `json:"text"`
	DelayMs      int    `json:"delayMs,omitempty"`
	PreserveCase *bool  `json:"preserveCase,omitempty"`
}

// SequenceAction is one step of a sequence request. Type selects which of
// the remaining fields applies: "keys" (single key or "+"-combination),
// "text", "delay" or "releaseAll".
type SequenceAction struct {
	Type    string `json:"type"`
	Keys    string `json:"keys,omitempty"`
	Text    string `json:"text,omitempty"`
	DelayMs int    `json:"delayMs,omitempty"`
}

type SequenceRequest struct {
	Actions []SequenceAction `json:"actions"`
}

// ReportRequest is the payload for report: write a raw boot report from a
// modifier mask and up to six usage codes.
type ReportRequest struct {
	Mask uint8 `json:"mask"`
	Keys []int `json:"keys,omitempty"`
}
