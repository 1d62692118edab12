package notify

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes an info mapping. A missing key leaves the field
// unspecified and an explicit null clears it. Durations accept Go duration
// strings ("1.5s") or integer milliseconds.
func (i *Info) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: info must be a mapping", node.Line)
	}

	*i = Info{}
	for k := 0; k+1 < len(node.Content); k += 2 {
		key, val := node.Content[k], node.Content[k+1]

		var err error
		switch key.Value {
		case "title":
			i.Title, err = stringField(val)
		case "message":
			i.Message, err = stringField(val)
		case "icon":
			i.Icon, err = stringField(val)
		case "title_color":
			i.TitleColor, err = stringField(val)
		case "message_color":
			i.MessageColor, err = stringField(val)
		case "duration":
			i.Duration, err = durationField(val)
		default:
			err = fmt.Errorf("unknown key %q", key.Value)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}

	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func stringField(n *yaml.Node) (Field[string], error) {
	if isNull(n) {
		return Clear[string](), nil
	}

	var s string
	if err := n.Decode(&s); err != nil {
		return Field[string]{}, err
	}
	return Set(s), nil
}

func durationField(n *yaml.Node) (Field[time.Duration], error) {
	if isNull(n) {
		return Clear[time.Duration](), nil
	}
	if n.Kind != yaml.ScalarNode {
		return Field[time.Duration]{}, fmt.Errorf("duration must be a scalar")
	}

	if n.ShortTag() == "!!int" {
		ms, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return Field[time.Duration]{}, fmt.Errorf("parse duration: %w", err)
		}
		return Set(time.Duration(ms) * time.Millisecond), nil
	}

	d, err := time.ParseDuration(n.Value)
	if err != nil {
		return Field[time.Duration]{}, fmt.Errorf("parse duration: %w", err)
	}
	return Set(d), nil
}
