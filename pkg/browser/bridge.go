package browser

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed bridge.js
var bridgeJS string

const (
	bindingName       = "notwiceEmit"
	keyAttr           = "data-notwice-key"
	configPlaceholder = "__NOTWICE_CONFIG__"
)

// Action is an operator action requested from the page console
type Action string

// console actions
const (
	ActionShow  Action = "show"
	ActionClear Action = "clear"
)

// bridgeConfig is injected into the page script
type bridgeConfig struct {
	Binding       string  `json:"binding"`
	ItemSelector  string  `json:"itemSelector"`
	ProcessedAttr string  `json:"processedAttr"`
	KeyAttr       string  `json:"keyAttr"`
	Threshold     float64 `json:"threshold"`
}

// renderScript returns the bridge script with its configuration inlined
func renderScript(cfg bridgeConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal bridge config: %w", err)
	}
	if !strings.Contains(bridgeJS, configPlaceholder) {
		return "", fmt.Errorf("bridge script has no %s placeholder", configPlaceholder)
	}
	return strings.Replace(bridgeJS, configPlaceholder, string(data), 1), nil
}

// message is a payload sent by the bridge through the binding
type message struct {
	Type   string  `json:"type"`
	URL    string  `json:"url,omitempty"`
	Key    string  `json:"key,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
	Action Action  `json:"action,omitempty"`
}

func parseMessage(payload string) (message, error) {
	var msg message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return message{}, fmt.Errorf("decode bridge message: %w", err)
	}
	switch msg.Type {
	case "mutation":
	case "intersection":
		if msg.Key == "" {
			return message{}, errors.New("intersection without key")
		}
	case "action":
		if msg.Action != ActionShow && msg.Action != ActionClear {
			return message{}, fmt.Errorf("unknown action %q", msg.Action)
		}
	default:
		return message{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return msg, nil
}

// call renders a bridge method call with json-encoded arguments
func call(method string, args ...any) (string, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		data, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("marshal %s argument: %w", method, err)
		}
		parts = append(parts, string(data))
	}
	return fmt.Sprintf("window.__notwice.%s(%s)", method, strings.Join(parts, ", ")), nil
}
