package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"vetter/check"
	"vetter/internal/browser"
	"vetter/style"
)

type checkResponse struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	OK    bool   `json:"ok"`
}

type kindsResponse struct {
	Kinds []string `json:"kinds"`
}

type deviceResponse struct {
	UserAgent string `json:"userAgent"`
	Android   bool   `json:"android"`
	IOS       bool   `json:"ios"`
}

type scrollResponse struct {
	Selector  string `json:"selector"`
	URL       string `json:"url,omitempty"`
	Found     bool   `json:"found"`
	Bottom    bool   `json:"bottom"`
	OverflowY string `json:"overflowY"`
}

type imageResponse struct {
	Image bool `json:"image"`
	Bytes int  `json:"bytes"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(s.cfg.IndexHTML)))
	io.WriteString(w, s.cfg.IndexHTML)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse form: %v", err))
		return
	}
	kind := strings.TrimSpace(r.FormValue("kind"))
	if kind == "" {
		writeError(w, http.StatusBadRequest, "missing kind")
		return
	}
	pred, ok := check.Lookup(kind)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   fmt.Sprintf("unknown kind %q", kind),
			Suggest: check.Suggest(kind),
		})
		return
	}
	value := r.FormValue("value")
	writeJSON(w, http.StatusOK, checkResponse{Kind: kind, Value: value, OK: pred(value)})
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, kindsResponse{Kinds: check.Names()})
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	env := check.Env{UserAgent: firstNonEmpty(r.URL.Query().Get("ua"), r.UserAgent())}
	writeJSON(w, http.StatusOK, deviceResponse{
		UserAgent: env.UserAgent,
		Android:   env.IsAndroidDevice(),
		IOS:       env.IsIOSDevice(),
	})
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	selector := strings.TrimSpace(r.URL.Query().Get("selector"))
	if selector == "" {
		writeError(w, http.StatusBadRequest, "missing selector")
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.scrollStatic(w, r, selector)
	case http.MethodGet:
		s.scrollLive(w, r, selector)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) scrollStatic(w http.ResponseWriter, r *http.Request, selector string) {
	body, tooLarge, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if tooLarge {
		writeError(w, http.StatusRequestEntityTooLarge, "document too large")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse html: %v", err))
		return
	}
	node, err := style.Find(doc, selector)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sheet := style.Parse(r.Context(), doc, style.Options{Logger: s.logger})
	env := check.Env{UserAgent: r.UserAgent(), Style: sheet.StyleFunc()}
	writeJSON(w, http.StatusOK, scrollResponse{
		Selector:  selector,
		Found:     node != nil,
		Bottom:    env.IsScrolledToBottom(node),
		OverflowY: sheet.ComputedStyle(node, "overflow-y"),
	})
}

func (s *Server) scrollLive(w http.ResponseWriter, r *http.Request, selector string) {
	if s.cfg.Prober == nil {
		writeError(w, http.StatusNotImplemented, "live probes are disabled")
		return
	}
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}
	if !check.IsURL(target) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid url %q", target))
		return
	}
	snap, err := s.cfg.Prober.Probe(r.Context(), browser.ProbeRequest{
		URL:       target,
		Selector:  selector,
		UserAgent: r.URL.Query().Get("ua"),
		Timeout:   s.cfg.ProbeTimeout,
	})
	if err != nil {
		s.logger.Warn("probe failed", zap.String("url", target), zap.String("selector", selector), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scrollResponse{
		Selector:  selector,
		URL:       snap.URL,
		Found:     snap.Found,
		Bottom:    snap.AtBottom(),
		OverflowY: snap.OverflowY,
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, tooLarge, err := readBody(w, r, s.cfg.MaxBodyBytes)
	if tooLarge {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{Image: check.IsImage(body), Bytes: len(body)})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "pong\n")
}
