// tbprobe is a command-line Syzygy WDL tablebase probe. It loads every .rtbw file found under a
// directory and reports the win/draw/loss verdict for one or more FEN positions.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/herohde/tbprobe/pkg/board/fen"
	"github.com/herohde/tbprobe/pkg/tablebase"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	dir      = flag.String("dir", "", "Directory containing Syzygy .rtbw tablebase files (required)")
	position = flag.String("fen", "", "Position to probe (default to standard start)")
	stdin    = flag.Bool("stdin", false, "Read one FEN per line from stdin instead of -fen")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: tbprobe -dir <tablebase-dir> [-fen <fen>] [-stdin]

TBPROBE reports the WDL (win/draw/loss) verdict Syzygy tablebases hold for a position.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *dir == "" {
		flag.Usage()
		logw.Exitf(ctx, "Missing -dir")
	}

	tb := tablebase.NewTablebase()
	if err := loadDir(ctx, tb, *dir); err != nil {
		logw.Exitf(ctx, "Failed to load %v: %v", *dir, err)
	}
	logw.Infof(ctx, "%v v%v: loaded tables up to %v men from %v", "tbprobe", version, tb.MaxPieces(), *dir)

	if *stdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			probe(ctx, tb, line)
		}
		return
	}

	f := *position
	if f == "" {
		f = fen.Initial
	}
	probe(ctx, tb, f)
}

func probe(ctx context.Context, tb *tablebase.Tablebase, f string) {
	pos, _, _, err := fen.Decode(f)
	if err != nil {
		logw.Errorf(ctx, "Invalid fen '%v': %v", f, err)
		println(fmt.Sprintf("%v,error,%v", f, err))
		return
	}

	wdl, capture, ok := tb.ProbeWDL(ctx, pos)
	if !ok {
		println(fmt.Sprintf("%v,unknown", f))
		return
	}
	println(fmt.Sprintf("%v,%v,bestIsCapture=%v", f, wdl, capture))
}

func loadDir(ctx context.Context, tb *tablebase.Tablebase, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".rtbw" {
			return nil
		}
		return tb.LoadFile(ctx, path)
	})
}
