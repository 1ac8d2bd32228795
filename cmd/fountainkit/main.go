// Package main is the entry point for the fountainkit terminal host.
// It renders the classified screenplay with standard per-kind indents
// and routes keys and mouse clicks into the editing core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fountainkit/internal/config"
	"github.com/dshills/fountainkit/internal/document"
	"github.com/dshills/fountainkit/internal/metrics"
	"github.com/dshills/fountainkit/internal/textio"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fountainkit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if configPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configPath = filepath.Join(home, ".config", "fountainkit", "config.toml")
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	logFile, err := os.OpenFile("fountainkit.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	ed, err := newEditor(cfg, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ed.shutdown()

	if err := ed.loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newEditor(cfg config.Config, path string) (*editor, error) {
	text := ""
	if path != "" {
		loaded, err := textio.Load(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			// New file: start empty, create on first save.
		} else {
			text = loaded
		}
	}

	// Terminal geometry is cell based: every line is one cell tall and
	// glyph advances are whole cells. The configured font still keys
	// the metrics cache so a GUI host can swap providers unchanged.
	doc, err := document.FromText(text, document.Options{
		Provider: cellAdvances{},
		Font: metrics.FontKey{
			Font:     metrics.FontID(cfg.Font.Family),
			Size:     cfg.Font.Size,
			DPIScale: cfg.Font.DPIScale,
		},
		LineHeight: 1,
	})
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnablePaste()

	ed := &editor{
		cfg:    cfg,
		doc:    doc,
		screen: screen,
		path:   path,
	}

	if path != "" && cfg.Files.WatchExternal {
		if w, err := textio.WatchFile(path); err == nil {
			ed.watcher = w
			go ed.forwardReloads()
		} else {
			log.Printf("watcher unavailable for %s: %v", path, err)
		}
	}

	log.Printf("session %s opened %q (%d lines)", doc.SessionID(), path, doc.LineCount())
	return ed, nil
}
