// Command psetdump prints the content of a raw property set stream, or compares two
// streams property by property.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/arloliu/propset"
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/internal/hash"
)

func main() {
	var (
		inPath      string
		comparePath string
		strict      bool
		verbose     bool
	)
	flag.StringVar(&inPath, "in", "", "input property set stream")
	flag.StringVar(&comparePath, "compare", "", "second stream to compare against -in")
	flag.BoolVar(&strict, "strict", false, "fail on unsupported variant types")
	flag.BoolVar(&verbose, "v", false, "log tolerated malformations to stderr")
	flag.Parse()
	if inPath == "" {
		log.Fatal("-in is required")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tally := &propset.Tally{}
	opts := []propset.ReadOption{
		propset.WithLogger(logger),
		propset.WithUnsupportedTally(tally),
		propset.WithStrictTypes(strict),
	}

	ps, raw := load(inPath, opts)
	if comparePath == "" {
		dump(ps)
		if tally.Total() > 0 {
			fmt.Printf("\nunsupported types: %d\n", tally.Total())
			for _, vt := range tally.Types() {
				fmt.Printf("  %s: %d\n", vt, tally.Count(vt))
			}
		}

		return
	}

	other, otherRaw := load(comparePath, opts)
	fmt.Printf("raw fingerprints: %016x %016x\n", hash.Fingerprint(raw), hash.Fingerprint(otherRaw))
	fa, errA := ps.Fingerprint(propset.WithOpaquePassthrough(true))
	fb, errB := other.Fingerprint(propset.WithOpaquePassthrough(true))
	if err := errors.Join(errA, errB); err != nil {
		log.Fatalf("re-serialize: %v", err)
	}
	fmt.Printf("canonical fingerprints: %016x %016x\n", fa, fb)

	if ps.Equal(other) {
		fmt.Println("equal")
		return
	}
	fmt.Println("different")
	os.Exit(1)
}

func load(path string, opts []propset.ReadOption) (*propset.PropertySet, []byte) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	ps, err := propset.Parse(data, opts...)
	if errors.Is(err, errs.ErrNotAPropertySetStream) {
		log.Fatalf("%s: not a property set stream", path)
	}
	if err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}

	return ps, data
}

func dump(ps *propset.PropertySet) {
	h := ps.Header()
	fmt.Printf("format %d, os version 0x%08X, class id %s, %d section(s)\n", h.Format, h.OSVersion, h.ClassID, h.SectionCount)

	for i, sec := range ps.Sections() {
		fid, _ := sec.FormatID()
		names := propset.NameTableFor(fid)
		fmt.Printf("\nsection %d: %s codepage %d\n", i, fid, sec.Codepage())

		if d := sec.Dictionary(); d != nil {
			fmt.Printf("  dictionary (%d entries)\n", d.Len())
			for _, e := range d.Entries() {
				fmt.Printf("    %d = %q\n", e.ID, e.Name)
			}
		}

		for _, p := range sec.Properties() {
			fmt.Printf("  %-20s %-22s %v\n", sec.PIDString(p.ID, names), p.Type, p.Value)
		}
	}
}
