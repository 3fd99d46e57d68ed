package program

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatOutput renders an output trace as comma separated decimal values.
func FormatOutput(output []byte) string {
	var sb strings.Builder
	for i, value := range output {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(value)))
	}
	return sb.String()
}

// ParseValues parses a comma separated list of 3 bit values, as used by the
// program line of the text format.
func ParseValues(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	values := make([]byte, 0, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing value %d '%s': %w", i, field, err)
		}
		if value > MaxValue {
			return nil, fmt.Errorf("%w: value %d at index %d", ErrValueRange, value, i)
		}
		values = append(values, byte(value))
	}
	return values, nil
}
