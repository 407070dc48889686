package points

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is wrapped by a DeserializeError when the payload holds
// no point list at all.
var ErrEmptyDocument = errors.New("empty point list document")

// ErrTrailingDocument is wrapped by a DeserializeError when the payload
// holds more than one YAML document.
var ErrTrailingDocument = errors.New("unexpected document after point list")

// DeserializeError reports a malformed point list payload.
type DeserializeError struct {
	Index int // offending point, or -1 for document-level failures
	Err   error
}

func (e *DeserializeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("deserializing points: %v", e.Err)
	}
	return fmt.Sprintf("deserializing points: point #%d: %v", e.Index, e.Err)
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// UnmarshalYAML accepts exactly two integer scalars in int32 range. Floats
// and quoted numbers are rejected rather than truncated.
func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: pos must be a list of two integers", node.Line)
	}
	var out Position
	for i, n := range node.Content {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
			return fmt.Errorf("line %d: pos coordinate %q is not an integer", n.Line, n.Value)
		}
		var v int64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: pos coordinate %q: %w", n.Line, n.Value, err)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("line %d: pos coordinate %d out of range", n.Line, v)
		}
		out[i] = int32(v)
	}
	*p = out
	return nil
}

// wirePoint uses pointers so that missing fields can be told apart from
// zero values.
type wirePoint struct {
	Pos   *Position `yaml:"pos,flow"`
	Color *Color    `yaml:"color,flow"`
}

// Marshal encodes pts as a YAML sequence of {pos: [x, y], color: [r, g, b]}.
func Marshal(pts []Point) ([]byte, error) {
	if pts == nil {
		pts = []Point{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(pts); err != nil {
		return nil, fmt.Errorf("marshaling points: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling points: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a point list. JSON payloads are accepted as well, since
// they are valid YAML. Any failure is returned as a *DeserializeError.
func Unmarshal(data []byte) ([]Point, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DeserializeError{Index: -1, Err: ErrEmptyDocument}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var wire []wirePoint
	if err := dec.Decode(&wire); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyDocument
		}
		return nil, &DeserializeError{Index: -1, Err: err}
	}
	if wire == nil {
		return nil, &DeserializeError{Index: -1, Err: ErrEmptyDocument}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = ErrTrailingDocument
		}
		return nil, &DeserializeError{Index: -1, Err: err}
	}

	pts := make([]Point, len(wire))
	for i, w := range wire {
		if w.Pos == nil {
			return nil, &DeserializeError{Index: i, Err: errors.New("missing pos")}
		}
		if w.Color == nil {
			return nil, &DeserializeError{Index: i, Err: errors.New("missing color")}
		}
		if !w.Color.Valid() {
			return nil, &DeserializeError{Index: i, Err: fmt.Errorf("color %v outside [0, 1]", *w.Color)}
		}
		pts[i] = Point{Pos: *w.Pos, Color: *w.Color}
	}
	return pts, nil
}
