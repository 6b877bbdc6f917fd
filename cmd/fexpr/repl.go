package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const historyFile = ".fexpr_history"

// repl reads expressions interactively until EOF, Ctrl+C, or q. Lines that
// compile are added to the history, which persists in the home directory.
func (c *calc) repl(w io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		if _, err := ln.ReadHistory(f); err != nil {
			log.Printf("reading history: %v", err)
		}
		f.Close()
	}

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		if c.eval(w, line) == nil {
			ln.AppendHistory(line)
		}
	}

	saveHistory(histPath, ln.WriteHistory)
	return nil
}

// saveHistory writes the history to path. Failures are logged, not returned,
// so that losing history never fails a session.
func saveHistory(path string, write func(io.Writer) (int, error)) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("saving history: %v", err)
		return
	}
	defer f.Close()
	if _, err := write(f); err != nil {
		log.Printf("saving history: %v", err)
	}
}
