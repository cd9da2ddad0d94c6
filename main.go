package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/tagtint/tagtint/internal/engine"
	"github.com/tagtint/tagtint/internal/palette"
	"github.com/tagtint/tagtint/internal/render"
	"github.com/tagtint/tagtint/internal/scanner"
	"github.com/tagtint/tagtint/internal/session"
)

var (
	paletteFlag = kingpin.Flag("palette", "Hex color to add to the rotation, repeatable; replaces the default six").Short('p').Strings()
	kindFlag    = kingpin.Flag("kind", "Force the content kind instead of detecting it from the file").Enum("markup", "host", "markup-expr")
	watch       = kingpin.Flag("watch", "Watch files for changes and re-render automatically").Short('w').Bool()
	files       = kingpin.Arg("files", "Files to highlight").Required().ExistingFiles()

	pal palette.Palette
)

func main() {
	kingpin.Parse()

	pal = palette.Default()
	if len(*paletteFlag) > 0 {
		var err error
		pal, err = palette.Parse(*paletteFlag)
		if err != nil {
			kingpin.Fatalf("invalid palette: %s", err)
		}
	}

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		err := renderAll()
		if err != nil {
			kingpin.Fatalf("failed to highlight files: %s", err)
		}
	}
}

func renderAll() error {
	for _, fname := range *files {
		err := renderFile(fname)
		if err != nil {
			return fmt.Errorf("highlight file %q: %w", fname, err)
		}
	}

	return nil
}

func renderFile(fname string) error {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	text := string(buf)
	spans := engine.Scan(text, kindFor(fname, buf), pal.Size())

	fmt.Print(render.Document(text, spans, pal))

	return nil
}

func kindFor(fname string, buf []byte) scanner.ContentKind {
	switch *kindFlag {
	case "markup":
		return scanner.KindMarkup
	case "host":
		return scanner.KindHostLanguage
	case "markup-expr":
		return scanner.KindMarkupExpr
	}

	return session.DetectKind(fname, buf)
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Println("watching files for changes...")

	<-ch
	return nil
}
