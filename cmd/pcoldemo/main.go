// Command pcoldemo reads "key=value" lines from stdin and loads them into
// both a btree.Map and a hamt.Dict, keyed by pkey.Key, then reports size
// and ordering diagnostics for each. It exists to give the persistent
// collection packages an end-to-end, runnable consumer; it is not part of
// their public contract.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pcollections/pcollections/btree"
	"github.com/pcollections/pcollections/hamt"
	"github.com/pcollections/pcollections/pkey"
)

func main() {
	leafCapacity := flag.Int("leaf-capacity", btree.DefaultLeafCapacity, "B-tree leaf node capacity")
	internalCapacity := flag.Int("internal-capacity", btree.DefaultInternalCapacity, "B-tree internal node capacity")
	quiet := flag.Bool("quiet", false, "suppress per-line logging")
	flag.Parse()

	tree := btree.WithLeafAndInternalCapacities[pkey.Key, string](*leafCapacity, *internalCapacity)
	dict := hamt.New[pkey.Key, string]()

	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			log.Printf("line %d: skipping malformed entry %q (want key=value)", lineNo, line)
			continue
		}
		k := pkey.FromString(key)
		tree.UpdateValue(k, value)
		dict = dict.Updating(k, value)
		if !*quiet {
			log.Printf("line %d: loaded %s=%s", lineNo, key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("reading stdin: %v", err)
	}

	fmt.Printf("btree.Map:  %d entries (leaf=%d, internal=%d)\n", tree.Len(), *leafCapacity, *internalCapacity)
	fmt.Printf("hamt.Dict:  %d entries\n", dict.Len())

	fmt.Println("ascending order (btree.Map):")
	for k, v := range tree.All() {
		fmt.Printf("  %s = %s\n", k, v)
	}

	mismatches := 0
	for k, v := range tree.All() {
		dv, ok := dict.Get(k)
		if !ok || dv != v {
			mismatches++
			log.Printf("mismatch for key %s: btree=%q hamt-ok=%v hamt-value=%q", k, v, ok, dv)
		}
	}
	if mismatches == 0 {
		fmt.Println("cross-check: hamt.Dict agrees with btree.Map on every key")
	} else {
		fmt.Printf("cross-check: %d mismatches between hamt.Dict and btree.Map\n", mismatches)
	}
}
