package widget

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FormatText renders the value of w for a plain text field. Colors are
// written as #rrggbb and vectors as three space-separated numbers.
func FormatText(w Widget) string {
	switch v := w.(type) {
	case *Checkbox:
		return strconv.FormatBool(v.Checked())
	case *Slider:
		return strconv.FormatFloat(v.Float(), 'g', 6, 64)
	case *Number:
		return strconv.FormatFloat(v.Float(), 'g', 6, 64)
	case *Dropdown:
		return v.String()
	case *ButtonGroup:
		return v.String()
	case *RGB:
		c, _ := colorful.MakeColor(v.Color())
		return c.Hex()
	case *Vec3:
		p := v.Vec()
		return fmt.Sprintf("%g %g %g", p.X, p.Y, p.Z)
	}
	return ""
}

// ParseText is the inverse of FormatText. The result can be passed to Assign.
func ParseText(w Widget, s string) (json.RawMessage, error) {
	s = strings.TrimSpace(s)
	var v any
	switch w.(type) {
	case *Checkbox:
		b, ok := parseBoolLoose(s)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %q is not a boolean", ErrBadValue, w.Name(), s)
		}
		v = b
	case *Slider, *Number:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadValue, w.Name(), err)
		}
		v = f
	case *Dropdown, *ButtonGroup:
		v = s
	case *RGB:
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadValue, w.Name(), err)
		}
		r, g, b := c.RGB255()
		v = [3]uint8{r, g, b}
	case *Vec3:
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s: want three numbers, got %q", ErrBadValue, w.Name(), s)
		}
		var p [3]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrBadValue, w.Name(), err)
			}
			p[i] = x
		}
		v = p
	case *Button:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown element %s", ErrBadValue, w.Name())
	}
	return json.Marshal(v)
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
