package genai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Shape declares what JSON value the caller expects from the model.
type Shape int

const (
	// ShapeAny infers from whichever opening bracket appears first.
	ShapeAny Shape = iota
	ShapeObject
	ShapeArray
)

// ParseError reports an unrecoverably malformed model response. The raw
// text is preserved for logging at the call site.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecoverable parse failure: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractJSON pulls the single JSON value out of a raw model response that
// may be wrapped in code fences or surrounded by commentary.
//
// A first strict parse is attempted on the bracket-sliced span. On
// failure, runs of literal control characters (raw newlines or tabs the
// model left inside string values) are collapsed to a single space and the
// parse is retried once. A second failure returns a ParseError.
func ExtractJSON(raw string, hint Shape) (json.RawMessage, error) {
	text := stripCodeFences(raw)
	span := sliceToBrackets(text, hint)

	if msg, ok := parseWithRecovery(span); ok {
		return finishExtract(msg, hint)
	}

	// An array was expected but the array-bracket slice is not valid JSON.
	// The model may have wrapped the array in a container object whose
	// trailing keys broke the slice, so retry against the object span.
	if hint == ShapeArray {
		objSpan := sliceToBrackets(text, ShapeObject)
		if msg, ok := parseWithRecovery(objSpan); ok {
			return finishExtract(msg, hint)
		}
	}

	cleaned := collapseControlRuns(span)
	var probe any
	err := json.Unmarshal([]byte(cleaned), &probe)
	return nil, &ParseError{Raw: raw, Err: err}
}

func parseWithRecovery(span string) (json.RawMessage, bool) {
	if msg, ok := strictParse(span); ok {
		return msg, true
	}
	return strictParse(collapseControlRuns(span))
}

func finishExtract(msg json.RawMessage, hint Shape) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(msg)
	if hint == ShapeArray && len(trimmed) > 0 && trimmed[0] == '{' {
		if inner, ok := firstEmbeddedArray(trimmed); ok {
			log.Printf("WARN: model wrapped expected array in an object, recovered embedded array")
			return inner, nil
		}
	}
	return msg, nil
}

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// sliceToBrackets narrows the text to the outermost bracket pair matching
// the hinted shape. Text without the expected brackets passes through
// unchanged and fails at parse time instead.
func sliceToBrackets(text string, hint Shape) string {
	opener, closer := "{", "}"
	switch hint {
	case ShapeArray:
		opener, closer = "[", "]"
	case ShapeAny:
		objIdx := strings.Index(text, "{")
		arrIdx := strings.Index(text, "[")
		if objIdx == -1 || (arrIdx != -1 && arrIdx < objIdx) {
			opener, closer = "[", "]"
		}
	}

	start := strings.Index(text, opener)
	end := strings.LastIndex(text, closer)
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

func strictParse(text string) (json.RawMessage, bool) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(text), true
}

// collapseControlRuns replaces each run of control characters (0x00-0x1F)
// with a single space. Valid JSON never contains them raw, so this only
// repairs strings the model forgot to escape.
func collapseControlRuns(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inRun := false
	for _, r := range text {
		if r <= 0x1F {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// firstEmbeddedArray walks the object's top-level values in document order
// and returns the first that is itself an array. Token-level walking keeps
// the document order that a map round trip would destroy.
func firstEmbeddedArray(obj []byte) (json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(obj))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return value, true
		}
	}
	return nil, false
}
