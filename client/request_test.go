package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

type testReqBody struct {
	SomeReqProp propType `json:"some_req_prop"`
}

type testResp struct {
	SomeProp propType `json:"some_prop"`
}

type propType struct {
	Name string `json:"name"`
}

type RespAssertion func(resp testResp) error

func Test_do(t *testing.T) {
	assert := func(fns ...RespAssertion) []RespAssertion { return fns }

	respContentsAreExactly := func(want testResp) RespAssertion {
		return func(got testResp) error {
			if !reflect.DeepEqual(got, want) {
				return fmt.Errorf("got %v, expected %v", got, want)
			}
			return nil
		}
	}

	respIsSuccess := func() RespAssertion {
		return func(got testResp) error {
			if got.SomeProp.Name != "success" {
				return fmt.Errorf("expected %v to be a successful response", got)
			}
			return nil
		}
	}

	tests := []struct {
		title      string
		backend    http.HandlerFunc
		method     string
		reqBody    interface{}
		path       string
		assertions []RespAssertion
	}{
		{
			title: "marshal",
			backend: func(w http.ResponseWriter, r *http.Request) {
				writeProp(w, "test_name")
			},
			method: http.MethodGet,
			assertions: assert(respContentsAreExactly(testResp{
				SomeProp: propType{
					Name: "test_name",
				},
			})),
		},
		{
			title: "path",
			backend: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/test_path" {
					writeSuccess(w)
				}
			},
			path:       "/test_path",
			method:     http.MethodGet,
			assertions: assert(respIsSuccess()),
		},
		{
			title: "body",
			backend: func(w http.ResponseWriter, r *http.Request) {
				reqBody := testReqBody{}
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				if err == nil && reqBody.SomeReqProp.Name == "req_body" && r.Header.Get("Content-Type") == "application/json" {
					writeSuccess(w)
				}
			},
			reqBody: testReqBody{
				SomeReqProp: propType{
					Name: "req_body",
				},
			},
			method:     http.MethodPost,
			assertions: assert(respIsSuccess()),
		},
		{
			title: "method",
			backend: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodDelete {
					writeSuccess(w)
				}
			},
			method:     http.MethodDelete,
			assertions: assert(respIsSuccess()),
		},
		{
			title: "no content",
			backend: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			method:     http.MethodGet,
			assertions: assert(respContentsAreExactly(testResp{})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			backend := httptest.NewServer(tt.backend)
			defer backend.Close()
			backendURL, err := url.Parse(backend.URL)
			if err != nil {
				t.Error(err)
			}

			client := DefaultClient{Base: backendURL}
			client.ensure()

			respObj := testResp{}
			_, err = client.do(context.Background(), tt.method, tt.path, tt.reqBody, &respObj)
			if err != nil {
				t.Error(err)
			}

			for _, asrt := range tt.assertions {
				if err := asrt(respObj); err != nil {
					t.Error(err)
				}
			}
		})
	}
}

func Test_doErrors(t *testing.T) {
	tests := []struct {
		title   string
		backend http.HandlerFunc
		want    string
	}{
		{
			title: "platform error",
			backend: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"ok":false,"status":422,"rid":1,"msg":"frame overflow: frames 16 > 15","kind":"frame_overflow"}`))
			},
			want: "status 422 (frame_overflow): frame overflow: frames 16 > 15",
		},
		{
			title: "plain text error",
			backend: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream gone", http.StatusBadGateway)
			},
			want: "status 502: upstream gone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			backend := httptest.NewServer(tt.backend)
			defer backend.Close()

			client := DefaultClient{Base: urlMust(url.Parse(backend.URL))}
			client.ensure()

			_, err := client.do(context.Background(), http.MethodGet, "/", nil, &testResp{})
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("do() error = %v, want *Error", err)
			}
			if perr.Error() != tt.want {
				t.Errorf("do() error = %q, want %q", perr.Error(), tt.want)
			}
		})
	}
}

func writeSuccess(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`{ "some_prop": { "name": "success"} }`))
}

func writeProp(w http.ResponseWriter, prop string) {
	_, _ = w.Write([]byte(`{ "some_prop": { "name": "` + prop + `"} }`))
}
