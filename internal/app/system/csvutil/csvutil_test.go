package csvutil

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"Survey ID", "Village"}, [][]string{
		{"HH-1", "Mal, T.E."},
		{"=HYPERLINK(\"x\")", "-12"},
	})
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Error("missing BOM")
	}
	want := "Survey ID,Village\r\n" +
		"HH-1,\"Mal, T.E.\"\r\n" +
		"\"'=HYPERLINK(\"\"x\"\")\",-12\r\n"
	if got := strings.TrimPrefix(out, "\xEF\xBB\xBF"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSanitizeField(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"plain":    "plain",
		"=1+1":     "'=1+1",
		"+91":      "'+91",
		"@cmd":     "'@cmd",
		"-3.5":     "-3.5",
		"-cmd":     "'-cmd",
		"-":        "'-",
		"Malbazar": "Malbazar",
	}
	for in, want := range cases {
		if got := SanitizeField(in); got != want {
			t.Errorf("SanitizeField(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetDownloadHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetDownloadHeaders(rec, "welfare 2025.csv")
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="welfare%202025.csv"` {
		t.Errorf("Content-Disposition: %q", cd)
	}
}
