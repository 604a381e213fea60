package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	logging "github.com/ipfs/go-log/v2"

	"github.com/mindsgn-studio/torrentmeta/bencode"
	"github.com/mindsgn-studio/torrentmeta/metainfo"
	"github.com/mindsgn-studio/torrentmeta/tui"
)

var log = logging.Logger("torrentmeta/cli")

func main() {
	strip := flag.Bool("strip", false, "Remove whitespace before decoding (corrupts binary payloads)")
	prefix := flag.Bool("prefix", false, "Decode the first value and ignore trailing bytes")
	maxDepth := flag.Int("max-depth", bencode.DefaultMaxDepth, "Maximum list/dictionary nesting, 0 for unlimited")
	strictKeys := flag.Bool("strict-keys", false, "Reject duplicate dictionary keys")
	dump := flag.Bool("dump", false, "Print the decoded value tree instead of torrent metadata")
	plain := flag.Bool("plain", false, "Print a summary instead of starting the TUI")
	logLevel := flag.String("log-level", "error", "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: torrentmeta [options] <torrent-file>\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := logging.SetLogLevel("*", *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	torrentFile := flag.Arg(0)
	data, err := os.ReadFile(torrentFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading torrent: %v\n", err)
		os.Exit(1)
	}
	if *strip {
		data = bencode.StripWhitespace(data)
	}

	d := bencode.NewDecoder(data)
	d.MaxDepth = *maxDepth
	d.RejectDuplicateKeys = *strictKeys

	var root bencode.Value
	if *prefix {
		root, err = d.Decode()
	} else {
		root, err = d.DecodeStrict()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", torrentFile, err)
		os.Exit(1)
	}
	log.Debugw("decoded", "file", torrentFile, "consumed", d.Offset(), "size", len(data), "kind", root.Kind())

	if *dump {
		dumpValue(os.Stdout, root, 0)
		return
	}

	metaInfo, err := metainfo.FromValue(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing torrent: %v\n", err)
		os.Exit(1)
	}

	if *plain {
		printSummary(metaInfo)
		return
	}
	runTUI(metaInfo)
}

// runTUI runs the viewer with the Bubble Tea interface
func runTUI(metaInfo *metainfo.MetaInfo) {
	p := tea.NewProgram(tui.NewModel(metaInfo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(metaInfo *metainfo.MetaInfo) {
	fmt.Printf("Name: %s\n", metaInfo.Info.DisplayName())
	fmt.Printf("Total size: %s\n", tui.FormatBytes(metaInfo.TotalLength()))
	fmt.Printf("Pieces: %d x %s\n", metaInfo.NumPieces(), tui.FormatBytes(metaInfo.Info.Common().PieceLength))
	fmt.Printf("Private: %t\n", metaInfo.IsPrivate())
	if ts, ok := metaInfo.CreationTime(); ok {
		fmt.Printf("Created: %s\n", ts.Format("2006-01-02 15:04:05 MST"))
	}
	if metaInfo.CreatedBy != nil {
		fmt.Printf("Created by: %s\n", *metaInfo.CreatedBy)
	}
	if metaInfo.Comment != nil {
		fmt.Printf("Comment: %s\n", *metaInfo.Comment)
	}

	fmt.Println("\nTrackers:")
	for _, url := range metaInfo.Trackers() {
		fmt.Printf("  %s\n", url)
	}

	if multi, ok := metaInfo.Info.(*metainfo.MultipleFileInfo); ok {
		fmt.Println("\nFiles:")
		for _, f := range multi.Files {
			fmt.Printf("  %-10s %s\n", tui.FormatBytes(f.Length), strings.Join(f.Path, "/"))
		}
	}
}
