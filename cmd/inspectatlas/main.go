package main

import (
	"fmt"
	"os"
	"sort"

	"spine-mesh-baker/internal/atlas"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectatlas <file.atlas>...")
		os.Exit(2)
	}

	failed := 0
	for _, arg := range os.Args[1:] {
		a, err := atlas.ParseFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Printf("\n=== %s (pages=%d) ===\n", arg, len(a.Pages))
		for i, p := range a.Pages {
			fmt.Printf("Page[%d] %s regions=%d\n", i, p.Name, len(p.Order))
			keys := make([]string, 0, len(p.Properties))
			for k := range p.Properties {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %s: %s\n", k, p.Properties[k])
			}
		}

		info := atlas.Resolve(a)
		fmt.Printf("--- resolved %s %dx%d ---\n", info.Page, info.Width, info.Height)
		if len(a.Pages) == 0 {
			continue
		}
		for _, rn := range a.Pages[0].Order {
			r, ok := info.Regions[rn]
			if !ok {
				fmt.Printf("  %-32s (skipped)\n", rn)
				continue
			}
			rot := ""
			if r.Rotated {
				rot = " rotated"
			}
			fmt.Printf("  %-32s xy=%d,%d size=%dx%d%s\n", r.Name, r.X, r.Y, r.Width, r.Height, rot)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
