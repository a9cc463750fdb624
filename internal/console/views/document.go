package views

import "encoding/json"

// Document holds one free-form JSON object (verification criteria or
// instructions) while it is being edited. Malformed input is silently
// ignored: the previously stored valid document is retained, mirroring
// how the create form treats half-typed JSON.
type Document struct {
	value map[string]interface{}
}

// NewDocument creates a document holding the given object, or an empty
// object when nil is passed
func NewDocument(initial map[string]interface{}) *Document {
	if initial == nil {
		initial = map[string]interface{}{}
	}
	return &Document{value: initial}
}

// Set replaces the document when raw is a valid JSON object and reports
// whether it was applied. Invalid JSON leaves the stored document
// unchanged.
func (d *Document) Set(raw string) bool {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return false
	}
	// "null" unmarshals without error but carries no object.
	if parsed == nil {
		return false
	}
	d.value = parsed
	return true
}

// Value returns the stored object
func (d *Document) Value() map[string]interface{} {
	return d.value
}

// JSON returns the stored object as compact JSON
func (d *Document) JSON() string {
	data, err := json.Marshal(d.value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Pretty returns the stored object as indented JSON for display
func (d *Document) Pretty() string {
	data, err := json.MarshalIndent(d.value, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
