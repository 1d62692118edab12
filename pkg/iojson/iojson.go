// Package iojson writes command results as indented JSON.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is written in place of a value that could not be marshaled.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// Write encodes obj to w. A marshaling failure is reported as an Error
// document on ew and returned.
func Write(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		doc, _ := json.Marshal(Error{
			Message: "error marshaling output",
			Data:    map[string]any{"json_error": err.Error()},
		})
		_, _ = fmt.Fprintln(ew, string(doc))
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
