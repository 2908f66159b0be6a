package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMaxBodyLen = 1024 * 1024

// request is always scoped to a single http request handled by the server
type request struct {
	file, path string

	ctx    context.Context
	w      http.ResponseWriter
	r      *http.Request
	logger logrus.FieldLogger

	body []byte

	start       time.Time
	rid         uint64 // random request id
	code        int
	read, wrote int
	maxBodyLen  int64
	ip, port    string
	err, logerr error
}

// newRequest initializes request scoped structures, context and counters.
// The caller defers finalize to log the outcome.
func newRequest(w http.ResponseWriter, rq *http.Request, logger logrus.FieldLogger, maxBodyLen int64) request {
	if maxBodyLen <= 0 {
		maxBodyLen = defaultMaxBodyLen
	}
	r := request{
		path:       rq.URL.Path,
		ctx:        rq.Context(),
		r:          rq,
		w:          w,
		logger:     logger,
		start:      time.Now(),
		rid:        rand.Uint64(),
		code:       http.StatusOK,
		maxBodyLen: maxBodyLen,
	}
	r.rid |= 1 << 63 // sacrifice one bit of entropy so they always have the same # digits
	r.ip = r.r.Header.Get("X-Forwarded-For")
	r.port = r.r.Header.Get("X-Forwarded-Port")
	if r.ip == "" {
		r.ip, r.port, _ = net.SplitHostPort(r.r.RemoteAddr)
	}
	r.log(
		"ip", r.ip,
		"port", r.port,
		"method", r.r.Method,
		"path", r.r.URL.Path,
		"ref", r.r.Referer(),
		"ua", r.r.UserAgent(),
	)
	return r
}

func (r *request) finalize() {
	if r.logerr == nil {
		r.logerr = r.err
	}
	r.log(
		"code", r.code,
		"rx", r.read,
		"tx", r.wrote,
		"dur", time.Since(r.start).String(),
		"err", r.logerr,
	)
}

func (s *request) ok() bool {
	return s.err == nil
}

// Body reads the request body at most once and
// returns it.
func (s *request) Body() []byte {
	if !s.ok() {
		return nil
	}
	if s.body != nil {
		return s.body
	}
	s.body, s.err = ioutil.ReadAll(io.LimitReader(s.r.Body, s.maxBodyLen+1))
	s.read = len(s.body)
	if s.ok() && int64(len(s.body)) > s.maxBodyLen {
		s.err = errBodyTooLarge
	}
	return s.body
}

func (s *request) writeerror(msg string, code int, err error) bool {
	s.log(
		"msg", msg,
		"code", code,
		"err", err,
	)
	if err != nil {
		s.logerr = err
	}
	s.code = code
	s.w.Header().Set("content-type", "application/json")
	s.w.WriteHeader(code)
	fmt.Fprintln(s.w, PlatformError{
		Ok:     false,
		Status: code,
		Rid:    s.rid,
		Msg:    msg,
		Kind:   errorKind(err),
	}.String())
	return false
}

func (s *request) log(kv ...interface{}) {
	fields := logrus.Fields{"rid": s.rid}
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		switch t := v.(type) {
		case nil:
			v = ""
		case error:
			v = t.Error()
		case fmt.Stringer:
			v = t.String()
		}
		fields[fmt.Sprint(kv[i])] = v
	}
	s.logger.WithFields(fields).Info("request")
}

// status sets the response code for the next writebody
func (s *request) status(code int) {
	s.code = code
}

func (s *request) writebody(data interface{}, mimeType ...string) bool {
	if len(mimeType) != 0 {
		s.w.Header().Set("Content-Type", mimeType[0])
	}
	switch t := data.(type) {
	case io.WriterTo:
		s.w.WriteHeader(s.code)
		n, err := t.WriteTo(s.w)
		s.wrote, s.err = int(n), err
	case []byte:
		s.w.WriteHeader(s.code)
		s.wrote, s.err = s.w.Write(t)
	case string:
		s.w.WriteHeader(s.code)
		s.wrote, s.err = s.w.Write([]byte(t))
	case interface{}:
		data, err := json.Marshal(t)
		if err != nil {
			return s.writeerror("encoding response failed", http.StatusInternalServerError, err)
		}
		if len(mimeType) == 0 {
			s.w.Header().Set("Content-Type", "application/json")
		}
		s.w.WriteHeader(s.code)
		s.wrote, s.err = s.w.Write(data)
	}
	return s.ok()
}

// writenothing answers with a bodiless status such as 204 or 304
func (s *request) writenothing(code int) bool {
	s.code = code
	s.w.WriteHeader(code)
	return true
}

func (s *request) UnmarshalJSON(body interface{}) (ok bool) {
	data := s.Body()
	if !s.ok() {
		return false
	}
	if s.err = json.Unmarshal(data, body); s.err != nil {
		return false
	}
	return s.ok()
}

func (s *request) chop() string {
	s.file, s.path = chop(s.path)
	return s.file
}

func chop(p string) (file, next string) {
	p = path.Clean("/" + p)[1:]
	if n := strings.Index(p, "/"); n >= 0 {
		return p[:n], p[n:]
	}
	return p, "/"
}
