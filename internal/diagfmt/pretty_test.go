package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"kaleido/internal/diag"
	"kaleido/internal/source"
)

func newBag(fileID source.FileID, start, end uint32, msg string) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectRParen,
		Message:  msg,
		Primary:  source.Span{File: fileID, Start: start, End: end},
		Notes:    []diag.Note{{Span: source.Span{File: fileID, Start: start, End: end}, Msg: "found end of input"}},
	})
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.kal", []byte("def foo(a b\n"))
	fs.SetBaseDir("/home/user/project")
	bag := newBag(fileID, 11, 11, "expected ')' in prototype")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.kal"},
		{"Relative path", PathModeRelative, "src/test.kal"},
		{"Basename only", PathModeBasename, "test.kal:1:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN2002") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.kal", []byte("x\n\tfoo(1 2)\n"))
	// "2" на второй строке: смещение 2 + 1(tab) + 6
	bag := newBag(fileID, 9, 10, "expected ')' or ',' in argument list")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 5 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[1] != "1 | x" {
		t.Errorf("context line = %q", lines[1])
	}
	if lines[2] != "2 |     foo(1 2)" {
		t.Errorf("source line = %q", lines[2])
	}
	caret := lines[3]
	if idx := strings.Index(caret, "^"); idx != strings.Index(lines[2], "2)") {
		t.Errorf("caret at %d, want under '2':\n%s\n%s", idx, lines[2], caret)
	}
	if !strings.Contains(lines[4], "note: found end of input") {
		t.Errorf("note line = %q", lines[4])
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("# c\nf(世界")
	fileID := fs.AddVirtual("t.kal", content)
	end := uint32(len(content))
	bag := newBag(fileID, end, end, "unknown token when expecting an expression")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()
	// иероглифы занимают по две колонки
	if !strings.Contains(out, "2 | f(世界\n  |       ^\n") {
		t.Errorf("unexpected layout:\n%s", out)
	}
	if strings.Contains(out, "1 | # c") {
		t.Errorf("zero context must not print earlier lines:\n%s", out)
	}
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.kal", []byte("def"))
	bag := newBag(fileID, 3, 3, "expected function name in prototype")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}

func TestLineFormatter(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.kal", []byte("def foo("))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectProtoRParen,
		Message:  "expected ')' in prototype",
		Primary:  source.Span{File: fileID, Start: 8, End: 8},
		Notes:    []diag.Note{{Msg: "found end of input"}},
	}
	if got, want := LineFormatter(fs, false)(d), "t.kal:1:9: error: expected ')' in prototype (found end of input)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := LineFormatter(nil, false)(d), "error: expected ')' in prototype (found end of input)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestColorize(t *testing.T) {
	if !Colorize("on", false) || Colorize("off", true) {
		t.Fatal("explicit modes must win over tty detection")
	}
	if Colorize("auto", false) {
		t.Fatal("auto without tty must not color")
	}
}
