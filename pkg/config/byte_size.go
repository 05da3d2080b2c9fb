package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ByteSize is a size in bytes. It decodes from plain numbers and from
// strings with a unit suffix such as "512KB", "256MB" or "1GiB".
type ByteSize int64

const (
	KB ByteSize = 1 << (10 * (iota + 1))
	MB
	GB
)

var byteSizeUnits = []struct {
	suffix     string
	multiplier ByteSize
}{
	{"KIB", KB}, {"MIB", MB}, {"GIB", GB},
	{"KB", KB}, {"MB", MB}, {"GB", GB},
	{"K", KB}, {"M", MB}, {"G", GB},
	{"B", 1},
}

func ParseByteSize(value string) (ByteSize, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return 0, nil
	}

	multiplier := ByteSize(1)
	for _, unit := range byteSizeUnits {
		if strings.HasSuffix(normalized, unit.suffix) {
			multiplier = unit.multiplier
			normalized = strings.TrimSpace(strings.TrimSuffix(normalized, unit.suffix))
			break
		}
	}

	number, err := strconv.ParseFloat(normalized, 64)
	if err != nil || number < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", value)
	}

	return ByteSize(number * float64(multiplier)), nil
}

func (s ByteSize) Int64() int64 {
	return int64(s)
}

func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(ByteSize(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseByteSize(v)
		case int:
			return ByteSize(v), nil
		case int64:
			return ByteSize(v), nil
		case float64:
			return ByteSize(v), nil
		case ByteSize:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported byte size type: %T", v)
		}
	}
}
