package browser

import "vetter/check"

// Snapshot is the measured state of one element on a live page.
type Snapshot struct {
	URL       string  `json:"url"`
	Selector  string  `json:"selector"`
	Found     bool    `json:"found"`
	Top       float64 `json:"scrollTop"`
	Client    float64 `json:"clientHeight"`
	Height    float64 `json:"scrollHeight"`
	OverflowY string  `json:"overflowY"`
	UserAgent string  `json:"userAgent"`
}

var _ check.Element = (*Snapshot)(nil)

func (s *Snapshot) ScrollTop() float64 {
	if s == nil {
		return 0
	}
	return s.Top
}

func (s *Snapshot) ClientHeight() float64 {
	if s == nil {
		return 0
	}
	return s.Client
}

func (s *Snapshot) ScrollHeight() float64 {
	if s == nil {
		return 0
	}
	return s.Height
}

// ComputedStyle answers from the styles captured with the snapshot.
func ComputedStyle(el check.Element, property string) string {
	s, ok := el.(*Snapshot)
	if !ok || s == nil || !s.Found {
		return ""
	}
	if property == "overflow-y" {
		return s.OverflowY
	}
	return ""
}

// Env describes the page the snapshot was taken on.
func (s *Snapshot) Env() check.Env {
	env := check.Env{Style: ComputedStyle}
	if s != nil {
		env.UserAgent = s.UserAgent
	}
	return env
}

// AtBottom reports whether the element is scrolled to the bottom. A missing
// element is treated as absent.
func (s *Snapshot) AtBottom() bool {
	var el check.Element
	if s != nil && s.Found {
		el = s
	}
	return s.Env().IsScrolledToBottom(el)
}
