package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/replay"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "digest":
			digestCmd(os.Args[2:])
			return
		case "info":
			infoCmd(os.Args[2:])
			return
		}
	}
	listCmd(os.Args[1:])
}

func listCmd(args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	_ = fs.Parse(args)

	idx := openIndex(*dataDir)
	defer idx.Close()

	sessions, err := idx.Sessions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	for _, s := range sessions {
		fmt.Printf("%s\t%dx%d\t%s\n", s.SessionID, s.Width, s.Height, s.Path)
	}
}

func digestCmd(args []string) {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	session := fs.String("session", "", "session id")
	tick := fs.Uint64("tick", 0, "tick number")
	_ = fs.Parse(args)

	if *session == "" {
		fmt.Fprintln(os.Stderr, "missing -session")
		os.Exit(2)
	}

	idx := openIndex(*dataDir)
	defer idx.Close()

	d, ok, err := idx.Digest(*session, *tick)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "no digest for session=%s tick=%d\n", *session, *tick)
		os.Exit(1)
	}
	fmt.Println(d)
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	path := fs.String("replay", "", "path to a .jsonl.zst recording")
	_ = fs.Parse(args)

	if *path == "" {
		fmt.Fprintln(os.Stderr, "missing -replay")
		os.Exit(2)
	}

	hdr, entries, err := replay.Read(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}

	intents := 0
	for _, e := range entries {
		intents += len(e.Intents)
	}
	fmt.Printf("session=%s map=%dx%d bots=%d nations=%d ticks=%d intents=%d\n",
		hdr.SessionID, hdr.Width, hdr.Height, hdr.Bots, hdr.Nations, len(entries), intents)
	if n := len(entries); n > 0 {
		fmt.Printf("final tick=%d digest=%s\n", entries[n-1].Tick, entries[n-1].Digest)
	}
}

func openIndex(dataDir string) *replay.Index {
	idx, err := replay.OpenIndex(filepath.Join(dataDir, "index", "replays.db"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "open index:", err)
		os.Exit(1)
	}
	return idx
}
