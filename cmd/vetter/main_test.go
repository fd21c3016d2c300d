package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VETTER_CONFIG", "")
	t.Setenv("VETTER_LOG_LEVEL", "error")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := runCLI(t, "check", "email", "user@example.com")
	if err != nil || strings.TrimSpace(out) != "true" {
		t.Fatalf("check email = %q, %v", out, err)
	}

	out, err = runCLI(t, "check", "phone", "1380000000")
	if !errors.Is(err, errRejected) || strings.TrimSpace(out) != "false" {
		t.Fatalf("check phone = %q, %v", out, err)
	}

	_, err = runCLI(t, "check", "emial", "x")
	if err == nil || !strings.Contains(err.Error(), `did you mean "email"`) {
		t.Fatalf("unknown kind error = %v", err)
	}
}

func TestKindsCommand(t *testing.T) {
	out, err := runCLI(t, "kinds")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 9 || lines[0] != "alphabetic" || lines[8] != "url" {
		t.Fatalf("kinds output = %q", out)
	}
}

func TestDeviceCommand(t *testing.T) {
	out, err := runCLI(t, "device", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "android=false ios=true" {
		t.Fatalf("device output = %q", out)
	}
}

func newStyleSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><link rel="stylesheet" href="/site.css"></head>
<body><div class="box" style="width: 10px">x</div></body></html>`)
	})
	mux.HandleFunc("/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		fmt.Fprint(w, `.box { overflow: hidden; color: red }`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStyleCommand(t *testing.T) {
	srv := newStyleSite(t)
	page := srv.URL + "/"

	out, err := runCLI(t, "style", page, ".box", "overflow-y")
	if err != nil || out != "hidden\n" {
		t.Fatalf("single property = %q, %v", out, err)
	}

	out, err = runCLI(t, "style", page, ".box")
	if err != nil {
		t.Fatal(err)
	}
	want := "color: red\noverflow: hidden\noverflow-x: hidden\noverflow-y: hidden\nwidth: 10px\n"
	if out != want {
		t.Fatalf("style dump = %q, want %q", out, want)
	}

	_, err = runCLI(t, "style", page, ".missing")
	if err == nil || !strings.Contains(err.Error(), `no element matches ".missing"`) {
		t.Fatalf("missing element error = %v", err)
	}

	_, err = runCLI(t, "style", srv.URL+"/nope.html", ".box")
	if err == nil {
		t.Fatal("expected an error for a missing page")
	}
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		flag       string
		port       string
		want       string
	}{
		{"config", ":8081", "", "", ":8081"},
		{"flag wins over config", ":8081", "127.0.0.1:9000", "", "127.0.0.1:9000"},
		{"port wins over flag", ":8081", "127.0.0.1:9000", "7000", ":7000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", tc.port)
			if got := listenAddr(tc.configured, tc.flag); got != tc.want {
				t.Fatalf("listenAddr() = %q, want %q", got, tc.want)
			}
		})
	}
}
