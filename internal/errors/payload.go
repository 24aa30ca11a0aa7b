// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	"encoding/json"
	"strings"
)

// ExtractMessage pulls a human-readable message out of a server error payload.
// The backend may send {"detail": "..."}, {"message": "..."}, or a validation
// list {"detail": [{"msg": "..."}, ...]}. When nothing usable is present the
// fallback is returned; when the fallback is empty too, FallbackMessage is.
func ExtractMessage(payload []byte, fallback string) string {
	if msg := fromPayload(payload); msg != "" {
		return msg
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return FallbackMessage
}

func fromPayload(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "message"} {
		if msg := stringify(raw[key]); msg != "" {
			return msg
		}
	}
	return ""
}

// stringify turns a detail value into text. Lists are joined with "; ".
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		for _, key := range []string{"msg", "message", "detail"} {
			if s := stringify(val[key]); s != "" {
				return s
			}
		}
	}
	return ""
}
