package settings

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of a settings file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&Settings{})
	s.Title = "fmtkit settings"
	return s
}

// SchemaJSON returns Schema() as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

// JSONSchema describes ErrorAction as a string enum.
func (ErrorAction) JSONSchema() *jsonschema.Schema {
	return enumSchema(errorActionNames)
}

// JSONSchema describes CaseSensitivity as a string enum.
func (CaseSensitivity) JSONSchema() *jsonschema.Schema {
	return enumSchema(caseSensitivityNames)
}

// JSONSchema describes EscapeMode as a string enum.
func (EscapeMode) JSONSchema() *jsonschema.Schema {
	return enumSchema(escapeModeNames)
}

func enumSchema(names []string) *jsonschema.Schema {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = n
	}
	return &jsonschema.Schema{Type: "string", Enum: values}
}
