package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// decodeBody parses a response body in the master's JSON dialect. Bodies
// are usually strict JSON, but a few endpoints emit bare fragments (an
// unquoted word, a comma-separated sequence). Those are recovered the way
// the master itself reads them: wrap the text in a JSON array and take the
// first element. If both readings fail the body is undecodable.
func decodeBody(body []byte) (any, error) {
	v, err := decodeStrict(bytes.NewReader(body))
	if err == nil {
		return v, nil
	}
	wrapped := make([]byte, 0, len(body)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, body...)
	wrapped = append(wrapped, ']')
	if w, werr := decodeStrict(bytes.NewReader(wrapped)); werr == nil {
		if arr, ok := w.([]any); ok && len(arr) > 0 {
			return arr[0], nil
		}
	}
	return nil, &DecodeError{Body: truncate(string(body), 200), Err: err}
}

// decodeStrict reads exactly one JSON value. Objects come back as ordered
// maps so that document key order survives; numbers stay json.Number.
func decodeStrict(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", delim.String())
	}
	// string, json.Number, bool or nil
	return tok, nil
}

func decodeObject(dec *json.Decoder) (*orderedmap.OrderedMap[string, any], error) {
	obj := orderedmap.New[string, any]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return arr, nil
}
