package mounts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// ParseRecords strips JSONC comments from data and parses the remainder,
// returning the elements of the top-level array untouched.
//
// Comment stripping is string-aware: a "//" inside a quoted value such as
// "http://host" survives. Block comments and trailing commas are removed
// as well.
//
// A syntax error yields *model.ParseError; a root value that is not an
// array yields *model.ShapeError.
func ParseRecords(data []byte) ([]interface{}, error) {
	clean := jsonc.ToJSON(data)

	var root interface{}
	if err := json.Unmarshal(clean, &root); err != nil {
		return nil, &model.ParseError{Err: err}
	}

	records, ok := root.([]interface{})
	if !ok {
		return nil, &model.ShapeError{Got: jsonKind(root)}
	}
	return records, nil
}

// LoadRecords reads and parses the mount list at path.
//
// A missing file is not an error: found is false and records is nil, and
// the caller proceeds with an empty mount set. Other read failures are
// returned as-is; parse failures carry path in their message.
func LoadRecords(path string) (records []interface{}, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err = ParseRecords(data)
	if err != nil {
		switch e := err.(type) {
		case *model.ParseError:
			e.Path = path
		case *model.ShapeError:
			e.Path = path
		}
		return nil, true, err
	}
	return records, true, nil
}

// jsonKind names the JSON type of a value decoded into interface{}.
func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
