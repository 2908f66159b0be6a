package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
	"github.com/cbsinteractive/footage-timecode/footage"
	"github.com/cbsinteractive/footage-timecode/service/exceptions"
	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

var ErrStorage = errors.New("storage error")

var errBodyTooLarge = errors.New("request body too large")

type Server struct {
	Config      *config.Config
	DB          db.Repository
	logger      *logrus.Logger
	errReporter exceptions.Reporter
	fps         footage.FrameRate
	now         func() time.Time

	request
}

// New creates the conversion service.
func New(cfg *config.Config, repo db.Repository, logger *logrus.Logger, reporter exceptions.Reporter) (*Server, error) {
	fps, err := cfg.FrameRate()
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = &exceptions.NoopReporter{}
	}
	return &Server{
		Config:      cfg,
		DB:          repo,
		logger:      logger,
		errReporter: reporter,
		fps:         fps,
		now:         time.Now,
	}, nil
}

// Handler wraps the server with compression and panic recovery.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(panicLogger{s}))
	return recovery(gziphandler.GzipHandler(s))
}

func (s Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.request = newRequest(rw, r, s.logger, s.Config.Server.MaxBodyBytes)
	defer s.request.finalize()
	s.serve()
}

func (s *Server) serve() bool {
	switch s.chop() {
	case "healthcheck":
		if s.method() != http.MethodGet {
			return s.notallowed()
		}
		if err := s.DB.Healthcheck(); err != nil {
			return s.writeerror("report store unavailable", http.StatusServiceUnavailable, err)
		}
		return s.writebody(map[string]bool{"ok": true})
	case "convert":
		var req ConvertRequest
		switch s.method() {
		case http.MethodGet:
			if s.err = decodeQuery(s.r.URL.Query(), &req); s.err != nil {
				return s.writeerror("bad query", http.StatusBadRequest, s.err)
			}
		case http.MethodPost:
			if !s.request.UnmarshalJSON(&req) {
				return s.badbody()
			}
		default:
			return s.notallowed()
		}
		return s.convert(req)
	case "batch":
		id := s.chop()
		if id == "" {
			if s.method() != http.MethodPost {
				return s.notallowed()
			}
			var req BatchRequest
			if !s.request.UnmarshalJSON(&req) {
				return s.badbody()
			}
			return s.createBatch(req)
		}
		switch sub := s.chop(); {
		case sub == "" && s.method() == http.MethodGet:
			return s.getBatch(id)
		case sub == "" && s.method() == http.MethodDelete:
			return s.deleteBatch(id)
		case sub == "export" && s.method() == http.MethodGet:
			return s.exportBatch(id, s.r.URL.Query().Get("format"))
		case sub == "" || sub == "export":
			return s.notallowed()
		}
	}
	return s.writeerror("bad request path", http.StatusNotFound, nil)
}

func (s *Server) convert(req ConvertRequest) bool {
	resp, err := s.convert0(req)
	switch {
	case errors.Is(err, footage.ErrNoInput):
		return s.writenothing(http.StatusNoContent)
	case err != nil:
		return s.writeinvalid(err)
	}
	return s.writebody(resp)
}

func (s *Server) convert0(req ConvertRequest) (*ConvertResponse, error) {
	mode, err := batch.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	fps, err := s.frameRate(req.FPS)
	if err != nil {
		return nil, err
	}

	var c footage.Conversion
	resp := &ConvertResponse{Mode: mode}
	switch mode {
	case batch.FootageToTimecode:
		c, err = footage.ConvertFootage(req.Feet, req.Frames, req.Reel, fps)
		resp.Input, resp.Output = c.Footage.String(), c.Timecode.String()
	case batch.TimecodeToFootage:
		tc := req.Timecode
		if req.Autoformat {
			tc = footage.FormatDigits(tc)
		}
		c, err = footage.ConvertTimecode(tc, req.Reel, fps)
		resp.Input, resp.Output = c.Timecode.String(), c.Footage.String()
	}
	if err != nil {
		return nil, err
	}
	resp.FPS = c.FPS
	resp.Reel = c.Reel
	resp.ValueOnly = footage.ValueOnly(resp.Output)
	if d, ok := c.RunningTime(); ok {
		resp.RunningTime = d.String()
	}
	return resp, nil
}

func (s *Server) createBatch(req BatchRequest) bool {
	report, err := s.runBatch(req)
	if err != nil {
		return s.writeinvalid(err)
	}
	if report.ID, err = genID(); err != nil {
		return s.writeinternal("generating report id failed", err)
	}
	report.Created = s.now()
	if err = s.DB.SaveReport(report); err != nil {
		return s.writeinternal("save report failed", fmt.Errorf("%w: %v", ErrStorage, err))
	}
	s.w.Header().Set("Location", "/batch/"+report.ID)
	s.status(http.StatusCreated)
	return s.writebody(report)
}

func (s *Server) runBatch(req BatchRequest) (*batch.Report, error) {
	mode, err := batch.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	fps, err := s.frameRate(req.FPS)
	if err != nil {
		return nil, err
	}
	reel, err := batch.ParseReel(req.Reel)
	if err != nil {
		return nil, err
	}
	if len(req.Lines) > 0 {
		return batch.RunLines(req.Lines, mode, fps, reel)
	}
	return batch.Run(req.Input, mode, fps, reel)
}

func (s *Server) getBatch(id string) bool {
	report, ok := s.loadReport(id)
	if !ok {
		return false
	}
	return s.writebody(report)
}

func (s *Server) deleteBatch(id string) bool {
	err := s.DB.DeleteReport(id)
	switch {
	case err == db.ErrReportNotFound:
		return s.writeerror("report not found", http.StatusNotFound, err)
	case err != nil:
		return s.writeinternal("delete report failed", fmt.Errorf("%w: %v", ErrStorage, err))
	}
	return s.writenothing(http.StatusNoContent)
}

func (s *Server) exportBatch(id, format string) bool {
	report, ok := s.loadReport(id)
	if !ok {
		return false
	}
	fp, err := batch.Fingerprint(report)
	if err != nil {
		return s.writeinternal("fingerprint failed", err)
	}
	etag := fmt.Sprintf("%q", format+"-"+fp)
	s.w.Header().Set("ETag", etag)
	if s.r.Header.Get("If-None-Match") == etag {
		return s.writenothing(http.StatusNotModified)
	}

	var b strings.Builder
	switch format {
	case "", "txt":
		s.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", batch.Filename(report.Created)))
		err = batch.WriteText(&b, report)
		if err == nil {
			return s.writebody(b.String(), "text/plain; charset=utf-8")
		}
	case "tsv":
		err = batch.WriteTSV(&b, report)
		if err == nil {
			return s.writebody(b.String(), "text/tab-separated-values; charset=utf-8")
		}
	default:
		return s.writeerror(fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest, nil)
	}
	return s.writeinternal("export failed", err)
}

func (s *Server) loadReport(id string) (*batch.Report, bool) {
	report, err := s.DB.GetReport(id)
	switch {
	case err == db.ErrReportNotFound:
		return nil, s.writeerror("report not found", http.StatusNotFound, err)
	case err != nil:
		return nil, s.writeinternal("get report failed", fmt.Errorf("%w: %v", ErrStorage, err))
	}
	return report, true
}

// frameRate parses a requested rate, falling back to the configured one
func (s *Server) frameRate(text string) (footage.FrameRate, error) {
	if strings.TrimSpace(text) == "" {
		return s.fps, nil
	}
	return footage.ParseFrameRate(text)
}

func (s *Server) method() string {
	return s.request.r.Method
}

// writeinvalid answers a request whose input failed validation
func (s *Server) writeinvalid(err error) bool {
	if errors.Is(err, batch.ErrMode) {
		return s.writeerror(err.Error(), http.StatusBadRequest, err)
	}
	if footage.IsValidation(err) {
		return s.writeerror(err.Error(), http.StatusUnprocessableEntity, err)
	}
	return s.writeinternal("conversion failed", err)
}

func (s *Server) writeinternal(msg string, err error) bool {
	s.errReporter.ReportException(err, map[string]string{
		"rid":    fmt.Sprint(s.rid),
		"method": s.method(),
		"path":   s.r.URL.Path,
	})
	return s.writeerror(msg, http.StatusInternalServerError, err)
}

func (s *Server) badbody() bool {
	if s.err == errBodyTooLarge {
		return s.writeerror("request body too large", http.StatusRequestEntityTooLarge, s.err)
	}
	return s.writeerror("bad request body", http.StatusBadRequest, s.err)
}

func (s *Server) notallowed() bool {
	return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}

func errorKind(err error) string {
	if errors.Is(err, batch.ErrMode) {
		return "mode"
	}
	return footage.Kind(err)
}

// panicLogger logs recovered panics with their stack and forwards them to
// the exception reporter
type panicLogger struct {
	s *Server
}

func (p panicLogger) Println(v ...interface{}) {
	msg := fmt.Sprint(v...)
	p.s.logger.WithFields(logrus.Fields{
		"panic": true,
		"stack": string(debug.Stack()),
	}).Error(msg)
	p.s.errReporter.ReportException(errors.New(msg), map[string]string{"panic": "true"})
}
