package types

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// ------------------------------
// Response Types
// ------------------------------

// Envelope is the top-level object every endpoint returns. Payload fields
// are kept raw until the calling operation knows which one it wants.
type Envelope struct {
	Status   Flag            `json:"status"`
	Msg      Message         `json:"msg,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Networks json.RawMessage `json:"networks,omitempty"`
	Banks    json.RawMessage `json:"banks,omitempty"`
	Name     json.RawMessage `json:"name,omitempty"`
}

// DecodeEnvelope parses a response body. Numbers inside payload fields are
// later decoded as json.Number so amounts survive without float rounding.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// DecodeField decodes one raw payload field into v using json.Number for
// numeric values. An absent or null field leaves v untouched.
func DecodeField(raw json.RawMessage, v any) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// Flag is the envelope's success marker. Besides true/false it accepts the
// loosely typed values some endpoints send: 0/1, "0"/"1", "" and null, with
// the usual truthiness.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		*f = t != "" && t != "0"
	case []any:
		*f = len(t) > 0
	default:
		*f = true
	}
	return nil
}

// Message is the envelope's msg. Usually a string, but validation failures
// may carry an object or list of messages (e.g. {"phone":["required"]});
// those are flattened into one "; "-separated line, object keys in order.
type Message string

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var parts []string
	collectMessages(v, &parts)
	*m = Message(strings.Join(parts, "; "))
	return nil
}

func collectMessages(v any, out *[]string) {
	switch t := v.(type) {
	case nil:
	case string:
		if t != "" {
			*out = append(*out, t)
		}
	case []any:
		for _, e := range t {
			collectMessages(e, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectMessages(t[k], out)
		}
	default:
		b, _ := json.Marshal(t)
		*out = append(*out, string(b))
	}
}
