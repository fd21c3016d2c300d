// Package browser measures elements on live pages with headless Chrome.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultProbeTimeout = 25 * time.Second

// ProbeRequest names the page and element to measure.
type ProbeRequest struct {
	URL       string
	Selector  string
	UserAgent string
	Timeout   time.Duration
}

// Prober owns a headless Chrome allocator shared by all probes.
type Prober struct {
	allocator context.Context
	cancel    context.CancelFunc
	logger    *zap.Logger
	timeout   time.Duration
}

// Option configures a Prober.
type Option func(*proberOptions)

type proberOptions struct {
	execPath string
	timeout  time.Duration
	logger   *zap.Logger
}

// WithExecPath runs the given Chrome binary instead of searching PATH.
func WithExecPath(path string) Option {
	return func(o *proberOptions) { o.execPath = path }
}

// WithTimeout bounds every probe that does not set its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *proberOptions) { o.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *proberOptions) { o.logger = l }
}

// New prepares a headless Chrome allocator. Chrome itself starts on the first probe.
func New(opts ...Option) *Prober {
	o := proberOptions{timeout: defaultProbeTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("disable-extensions", true),
	)
	if o.execPath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(o.execPath))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), execOpts...)
	return &Prober{
		allocator: allocCtx,
		cancel:    cancel,
		logger:    o.logger,
		timeout:   o.timeout,
	}
}

// Close shuts Chrome down.
func (p *Prober) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Probe loads req.URL and measures the first element matching req.Selector.
// A selector that matches nothing yields a snapshot with Found unset.
func (p *Prober) Probe(ctx context.Context, req ProbeRequest) (*Snapshot, error) {
	target := strings.TrimSpace(req.URL)
	if target == "" {
		return nil, errors.New("probe: empty target url")
	}
	selector := strings.TrimSpace(req.Selector)
	if selector == "" {
		return nil, errors.New("probe: empty selector")
	}
	script, err := measureScript(selector)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	taskCtx, cancelTab := chromedp.NewContext(p.allocator)
	defer cancelTab()

	if ctx != nil {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithCancel(taskCtx)
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-taskCtx.Done():
			}
		}()
		defer cancel()
	}

	timeout := p.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(taskCtx, timeout)
		defer cancel()
	}

	var actions []chromedp.Action
	if ua := strings.TrimSpace(req.UserAgent); ua != "" {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(ua).Do(ctx)
		}))
	}
	var finalURL string
	snap := &Snapshot{Selector: selector}
	actions = append(actions,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&finalURL),
		chromedp.Evaluate(script, snap),
	)

	started := time.Now()
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return nil, fmt.Errorf("probe %s: %w", target, err)
	}
	if finalURL == "" {
		finalURL = target
	}
	snap.URL = finalURL
	snap.Selector = selector
	p.logger.Debug("probe finished",
		zap.String("url", finalURL),
		zap.String("selector", selector),
		zap.Bool("found", snap.Found),
		zap.Duration("took", time.Since(started)),
	)
	return snap, nil
}

// measureScript builds the expression evaluated in the page. Its result
// decodes into a Snapshot.
func measureScript(selector string) (string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("quote selector: %w", err)
	}
	return `(function (sel) {
  var out = {found: false, scrollTop: 0, clientHeight: 0, scrollHeight: 0, overflowY: "", userAgent: navigator.userAgent};
  var el = null;
  try { el = document.querySelector(sel); } catch (e) { return out; }
  if (!el) { return out; }
  out.found = true;
  out.scrollTop = el.scrollTop || 0;
  out.clientHeight = el.clientHeight || 0;
  out.scrollHeight = el.scrollHeight || 0;
  out.overflowY = window.getComputedStyle(el).getPropertyValue("overflow-y") || "";
  return out;
})(` + string(quoted) + `)`, nil
}
