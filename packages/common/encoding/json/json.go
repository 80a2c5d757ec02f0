package json

import (
	"hoa/packages/common/logger"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var log = logger.NewSource("JSON", logger.Default)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Decodes JSON from input into T.
func Decode[T any](input io.Reader) (T, error) {
	var result T

	if err := api.NewDecoder(input).Decode(&result); err != nil {
		log.Debug("Failed to decode JSON: "+err.Error(), nil)
		return result, err
	}

	return result, nil
}

// Same as Decode, but for raw bytes.
func Unmarshal[T any](data []byte) (T, error) {
	var result T

	if err := api.Unmarshal(data, &result); err != nil {
		log.Debug("Failed to unmarshal JSON: "+err.Error(), nil)
		return result, err
	}

	return result, nil
}

// Unmarshals data into v, which must be a pointer.
func UnmarshalInto(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalString(v any) (string, error) {
	return api.MarshalToString(v)
}

func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return api.NewEncoder(w)
}

func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return api.NewDecoder(r)
}
