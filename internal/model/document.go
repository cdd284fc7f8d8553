// Package model contain the document shapes stored in the jobs and applications collections
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FieldID is the key under which the store-native identifier of a document is exposed
const FieldID = "_id"

// Document is a schemaless JSON object as posted by the client.
// It is persisted as a JSONB column.
type Document map[string]any

// Clone returns a shallow copy of the document
func (d Document) Clone() Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the value of key when it holds a string, and "" otherwise.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// ID returns the store-native identifier of the document
func (d Document) ID() string {
	return d.String(FieldID)
}

// WithID returns a copy of the document carrying id under FieldID
func (d Document) WithID(id string) Document {
	out := d.Clone()
	out[FieldID] = id
	return out
}

// WithoutID returns a copy of the document with FieldID removed
func (d Document) WithoutID() Document {
	out := d.Clone()
	delete(out, FieldID)
	return out
}

// Value implements driver.Valuer so Document can be written to a jsonb column.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb columns.
func (d *Document) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Document{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}

	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	*d = doc
	return nil
}

// GormDataType tell gorm which column type to migrate Document into
func (Document) GormDataType() string {
	return "jsonb"
}
