// Package main is the entry point for the inkstorm document tool. It
// imports a document, optionally replays an edit script against the
// engine, and emits the normalized result.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/inkstorm/internal/codec"
	"github.com/dshills/inkstorm/internal/engine"
	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/host/domview"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

type options struct {
	input   string
	format  string
	script  string
	asHTML  bool
	showVer bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showVer {
		fmt.Println("inkstorm", version)
		return 0
	}

	doc, err := importDocument(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ed := engine.New(engine.WithDocument(doc))
	if err := placeCaretAtStart(ed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.script != "" {
		if err := runScript(ed, opts.script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.asHTML {
		view := domview.New(ed.Document())
		if err := html.Render(os.Stdout, view.Root()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: render: %v\n", err)
			return 1
		}
		fmt.Println()
		return 0
	}

	out, err := codec.EncodeJSON(ed.Document())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.input, "in", "", "input document (default: empty document)")
	flag.StringVar(&opts.format, "format", "", "input format: json, markdown, docx (default: by extension)")
	flag.StringVar(&opts.script, "script", "", "edit script to replay")
	flag.BoolVar(&opts.asHTML, "html", false, "emit the rendered host view instead of JSON")
	flag.BoolVar(&opts.showVer, "version", false, "print version and exit")
	flag.Parse()
	return opts
}

func importDocument(opts options) (*node.Document, error) {
	if opts.input == "" {
		return node.NewDocument(node.NewElement("paragraph", node.NewText("", nil))), nil
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := opts.format
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.input)) {
		case ".md", ".markdown":
			format = "markdown"
		case ".docx":
			format = "docx"
		default:
			format = "json"
		}
	}
	switch format {
	case "markdown":
		return codec.ImportMarkdown(f)
	case "docx":
		return codec.ImportDOCX(f)
	case "json":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return codec.DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func placeCaretAtStart(ed *engine.Editor) error {
	entries, err := node.Texts(ed.Document(), nil)
	if err != nil || len(entries) == 0 {
		return err
	}
	first := entries[0]
	_, err = ed.Do(func(b *command.Builder) error {
		r := position.NewCollapsed(position.Point{Key: first.Text.Key, Path: first.Path})
		return b.Select(r)
	})
	return err
}

// runScript replays a newline-separated edit script. Commands:
//
//	insert <text>      insert text at the caret
//	block <type>       insert a new block of the given type
//	split block|inline split at the caret
//	delete <n>         delete n characters backward
//	move <n>           move the focus n characters (negative = backward)
//	collapse           collapse the selection to its focus
func runScript(ed *engine.Editor, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" || strings.HasPrefix(cmd, "#") {
			continue
		}
		if err := runCommand(ed, cmd); err != nil {
			return fmt.Errorf("script line %d (%q): %w", line, cmd, err)
		}
	}
	return scanner.Err()
}

func runCommand(ed *engine.Editor, cmd string) error {
	verb, rest, _ := strings.Cut(cmd, " ")
	_, err := ed.Do(func(b *command.Builder) error {
		switch verb {
		case "insert":
			return b.InsertText(rest)
		case "block":
			typ := rest
			if typ == "" {
				typ = "paragraph"
			}
			return b.InsertBlock(node.NewElement(typ, node.NewText("", nil)))
		case "split":
			height := command.HeightBlock
			if rest == "inline" {
				height = command.HeightInline
			}
			return b.SplitNodes(command.SplitOptions{Height: height})
		case "delete":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return err
			}
			return b.DeleteBackward(n)
		case "move":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return err
			}
			if n < 0 {
				return b.MoveFocus(command.MoveOptions{Reverse: true, Distance: -n})
			}
			return b.MoveFocus(command.MoveOptions{Distance: n})
		case "collapse":
			return b.Collapse(command.CollapseToFocus)
		default:
			return fmt.Errorf("unknown command %q", verb)
		}
	})
	return err
}
