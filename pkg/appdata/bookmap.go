package appdata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BookMap maps lowercased book names to BookIds for client-side search.
// Keys keep their first-insertion order when serialized.
type BookMap struct {
	keys []string
	ids  map[string]int
}

// NewBookMap returns an empty map.
func NewBookMap() *BookMap {
	return &BookMap{ids: make(map[string]int)}
}

// Set assigns id to name. Re-setting a name keeps its original position.
func (m *BookMap) Set(name string, id int) {
	if m.ids == nil {
		m.ids = make(map[string]int)
	}
	if _, exists := m.ids[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.ids[name] = id
}

// Get returns the BookId for name.
func (m *BookMap) Get(name string) (int, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// Len returns the number of names.
func (m *BookMap) Len() int {
	return len(m.keys)
}

// Keys returns the names in insertion order.
func (m *BookMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON writes the names in insertion order.
func (m *BookMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCompact(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", m.ids[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order.
func (m *BookMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("book map: expected object, got %v", tok)
	}

	*m = BookMap{ids: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("book map: expected string key, got %v", tok)
		}
		var id int
		if err := dec.Decode(&id); err != nil {
			return fmt.Errorf("book map: value for %q: %w", key, err)
		}
		m.Set(key, id)
	}
	_, err = dec.Token()
	return err
}
