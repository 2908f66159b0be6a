package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/cbsinteractive/footage-timecode/service"
	"github.com/pkg/errors"
)

// Error is a non 2xx response from the service
type Error struct {
	service.PlatformError
}

func (e *Error) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("status %d (%s): %s", e.Status, e.Kind, e.Msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Msg)
}

// do sends reqBody as json and decodes the response into result. A *string
// result receives the raw body.
func (c *DefaultClient) do(ctx context.Context, method, path string, reqBody, result interface{}) (int, error) {
	var body io.Reader
	if reqBody != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
			return 0, errors.Wrap(err, "encoding request")
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base.String()+path, body)
	if err != nil {
		return 0, errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrap(err, "reading response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{}
		if json.Unmarshal(b, &e.PlatformError) != nil || e.Status == 0 {
			e.Status, e.Msg = resp.StatusCode, string(bytes.TrimSpace(b))
		}
		return resp.StatusCode, e
	}

	if result == nil || len(b) == 0 {
		return resp.StatusCode, nil
	}
	if s, ok := result.(*string); ok {
		*s = string(b)
		return resp.StatusCode, nil
	}
	if err = json.Unmarshal(b, result); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decoding response")
	}
	return resp.StatusCode, nil
}
