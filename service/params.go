package service

import (
	"net/url"

	"github.com/mitchellh/mapstructure"
)

// decodeQuery fills out from query parameters. Unknown parameters are an
// error and only the first value of a repeated parameter is used.
func decodeQuery(q url.Values, out interface{}) error {
	flat := make(map[string]interface{}, len(q))
	for k, v := range q {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(flat)
}
