// Command islandgen generates random island terrain maps accepted by the
// rossumoya simulator. Maps are deterministic per seed and always carry an
// Ocean border.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/appengine-ltd/rossumoya/internal/sim"
)

func main() {
	var (
		width  int
		height int
		seed   int64
		out    string
	)

	flag.IntVar(&width, "width", 30, "map width in cells")
	flag.IntVar(&height, "height", 20, "map height in cells")
	flag.Int64Var(&seed, "seed", 1, "generator seed")
	flag.StringVar(&out, "out", "", "output file (stdout if omitted)")
	flag.Parse()

	geography, err := sim.GenerateGeography(seed, width, height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if out == "" {
		fmt.Println(geography)
		return
	}
	if err := os.WriteFile(out, []byte(geography+"\n"), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
