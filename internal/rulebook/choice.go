package rulebook

import "encoding/json"

// ChoiceSourceType identifies where a choice's options come from
type ChoiceSourceType string

const (
	// ChoiceSourceInternal references a named option list inside the class
	// or subclass record (subclass takes priority when both carry the list)
	ChoiceSourceInternal ChoiceSourceType = "internal"

	// ChoiceSourceExternal references a named list in another rule file
	ChoiceSourceExternal ChoiceSourceType = "external"

	// ChoiceSourceExternalDynamic builds the file path from an earlier
	// choice's value (e.g. a spell list keyed by chosen class)
	ChoiceSourceExternalDynamic ChoiceSourceType = "external_dynamic"

	// ChoiceSourceFixedList embeds the option values directly
	ChoiceSourceFixedList ChoiceSourceType = "fixed_list"
)

// ChoiceSource describes where to resolve a choice's selectable options
type ChoiceSource struct {
	Type        ChoiceSourceType `json:"type"`
	List        string           `json:"list,omitempty"`
	File        string           `json:"file,omitempty"`
	FilePattern string           `json:"file_pattern,omitempty"`
	DependsOn   string           `json:"depends_on,omitempty"`
	Options     []string         `json:"options,omitempty"`
}

// ChoiceSpec is a pending decision point declared by a feature
type ChoiceSpec struct {
	Name     string       `json:"name,omitempty"`
	Source   ChoiceSource `json:"source"`
	Count    int          `json:"count,omitempty"`
	Required bool         `json:"required,omitempty"`
}

// ChoiceSpecs decodes either a single choice descriptor or an array of them;
// rule data uses both forms.
type ChoiceSpecs []ChoiceSpec

// UnmarshalJSON accepts a single object or an array
func (c *ChoiceSpecs) UnmarshalJSON(data []byte) error {
	var single ChoiceSpec
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ChoiceSpecs{single}
		return nil
	}

	var many []ChoiceSpec
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = ChoiceSpecs(many)
	return nil
}

// MarshalJSON writes the single-object form back when there is one entry
func (c ChoiceSpecs) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]ChoiceSpec(c))
}

// Choice is a resolved decision point ready for presentation: the option
// list has been materialized and nested choices carry their dependency.
type Choice struct {
	Key            string            `json:"key"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Options        []string          `json:"options"`
	Descriptions   map[string]string `json:"option_descriptions,omitempty"`
	Count          int               `json:"count"`
	Required       bool              `json:"required"`
	Level          int               `json:"level"`
	DependsOn      string            `json:"depends_on,omitempty"`
	DependsOnValue string            `json:"depends_on_value,omitempty"`
	Nested         bool              `json:"is_nested,omitempty"`
}
