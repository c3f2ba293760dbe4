// Command letterlib generates 3D-printable STL models for individual
// letters in four product variants (pin, magnet, keyring, cake mould).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/centria3d/letterlib"
)

func main() {
	defaults := letterlib.DefaultConfig()
	full := flag.Bool("full", false, "generate the complete A-Z alphabet instead of the CENTRIA letters")
	out := flag.String("out", defaults.OutputDir, "output directory root")
	preview := flag.Bool("preview", false, "render a PNG preview next to each generated STL")
	compensate := flag.Bool("compensate", false, "apply PLA shrinkage compensation to meshes")
	flag.Parse()

	line := strings.Repeat("=", 60)
	fmt.Println("Centria Letter Library Generator")
	fmt.Println(line)

	cfg := defaults
	cfg.OutputDir = *out
	cfg.Compensate = *compensate
	gen, err := letterlib.NewGenerator(cfg)
	if err != nil {
		log.Fatal(err)
	}

	letters := letterlib.CentriaLetters
	title := "CENTRIA LETTER LIBRARY GENERATOR"
	if *full {
		letters = letterlib.FullAlphabet
		title = "FULL ALPHABET LIBRARY GENERATOR"
	}
	fmt.Printf("\n%s\n%s\n%s\n", line, title, line)
	fmt.Printf("\nGenerating letters: %s\n", letterList(letters))
	fmt.Printf("Variants: %s\n", variantList(cfg.Variants))
	fmt.Println(line)

	outcomes := gen.GenerateSet(letters)
	gen.Summary(os.Stdout, outcomes)

	if *preview {
		renderPreviews(outcomes)
	}

	if !*full {
		fmt.Printf("\n%s\n", line)
		fmt.Println("TIP: Run with --full flag to generate complete alphabet (A-Z)")
		fmt.Printf("  %s --full\n", filepath.Base(os.Args[0]))
		fmt.Println(line)
	}

	// The batch itself never aborts; only a run with zero generated files
	// exits non-zero.
	ok := 0
	for _, o := range outcomes {
		if o.OK() {
			ok++
		}
	}
	if ok == 0 && len(outcomes) > 0 {
		os.Exit(1)
	}
}

func letterList(letters []rune) string {
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func variantList(variants []letterlib.Variant) string {
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = v.Name
	}
	return strings.Join(parts, ", ")
}
