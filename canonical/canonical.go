// Package canonical fixes the one textual encoding of claim values that
// both issuance and verification hash. Scalars render as their plain string
// form, structured values as compact JSON with lexicographically sorted
// object keys. Differing encodings between the two sides silently break
// every commitment check, so callers must not substitute their own.
package canonical

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Serialize renders v in the canonical form committed to by commitments.
func Serialize(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		return JSON(v)
	}
}

// JSON renders v as compact JSON with sorted object keys. Number literals
// survive the normalization round trip unchanged.
func JSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "marshal claim value")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var norm any
	if err := dec.Decode(&norm); err != nil {
		return "", errors.Wrap(err, "normalize claim value")
	}

	out, err := json.Marshal(norm)
	if err != nil {
		return "", errors.Wrap(err, "marshal canonical form")
	}
	return string(out), nil
}
