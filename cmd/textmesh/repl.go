package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/gpucore"
)

// repl builds every line read from the terminal. Each line is rendered to
// the -render file when one is given. Texts are kept until the next build
// of the same line so repeated lines within the cache TTL report a hit.
func repl(fs *textmesh.FontService, dev *gpucore.SoftwareDevice, o options) error {
	rl, err := readline.New(fmt.Sprintf("%dpx > ", o.size))
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Quit with <ctrl>D")
	seen := make(map[string]*textmesh.Text)
	defer func() {
		for _, txt := range seen {
			txt.Release()
		}
	}()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		txt, err := fs.CreateText(line, o.size, textOptions(o)...)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		prev, ok := seen[line]
		hit := ok && prev == txt
		if ok {
			prev.Release()
		}
		seen[line] = txt

		w, h := txt.Size()
		pterm.Printfln("%.1f x %.1f, %d vertices, cache hit: %t", w, h, txt.VertexCount(), hit)
		if o.render != "" {
			if err := render(dev, txt, o.render); err != nil {
				pterm.Error.Println(err)
			}
		}
	}

	if o.atlas != "" {
		return dumpAtlas(fs, o.size, o.atlas)
	}
	pterm.Info.Println("Good bye!")
	return nil
}
