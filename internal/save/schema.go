package save

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const recordSchemaURL = "ghost-hunt://save/record.json"

const recordSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "vec": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {"x": {"type": "number"}, "y": {"type": "number"}}
    }
  },
  "properties": {
    "playerPosition": {"$ref": "#/definitions/vec"},
    "playerStamina": {"type": "number", "minimum": 0},
    "currentRound": {"type": "integer", "minimum": 1},
    "nextRound": {"type": ["integer", "null"], "minimum": 1},
    "targetRegionName": {"type": "string"},
    "hasMarkedThisRound": {"type": "boolean"},
    "gameStateName": {"type": ["string", "null"]},
    "currentScore": {"type": "integer", "minimum": 0},
    "timerBaseTime": {"type": "number", "minimum": 0},
    "timerRemaining": {"type": "number", "minimum": 0},
    "timerRunning": {"type": "boolean"},
    "hasCheckedMarker": {"type": "boolean"},
    "hasHandledTimerExpiry": {"type": "boolean"},
    "markerPosition": {"oneOf": [{"type": "null"}, {"$ref": "#/definitions/vec"}]},
    "markerOpacity": {"type": "number", "minimum": 0, "maximum": 1},
    "saveTimestamp": {"type": "integer"}
  }
}`

var recordSchema = jsonschema.MustCompileString(recordSchemaURL, recordSchemaJSON)

// validateRecord checks raw snapshot JSON against the record schema.
func validateRecord(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := recordSchema.Validate(v); err != nil {
		return fmt.Errorf("save: snapshot schema: %w", err)
	}
	return nil
}
