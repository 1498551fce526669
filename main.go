package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"go.creack.net/watc/parser"
)

const historyFile = ".watc_history"

func compileFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }() // Best effort, opened read-only.
	return parser.Compile(f, os.Stdout)
}

func repl() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readDefinitions(ln)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := parser.CompileString(src, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readDefinitions prompts until the buffered input ends with the
// statement terminator, so a definition can span multiple lines.
func readDefinitions(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := "watc> "
		if b.Len() > 0 {
			prompt = "  ... "
		}
		line, err := ln.Prompt(prompt)
		if err != nil { // io.EOF or liner.ErrPromptAborted.
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		trimmed := strings.TrimSpace(b.String())
		if trimmed == "" || strings.HasSuffix(trimmed, ";") {
			return b.String(), true
		}
	}
}

func main() {
	log.SetFlags(0)
	switch len(os.Args) {
	case 1:
		repl()
	case 2:
		if err := compileFile(os.Args[1]); err != nil {
			log.Fatalf("%s", err)
		}
	default:
		log.Fatalf("Usage: %s [file]", os.Args[0])
	}
}
