package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: stdout)")
	pkg := flag.String("pkg", "main", "Package name for the generated file")
	noHeader := flag.Bool("no-header", false, "Omit the generated-code header")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: file2go [options] file varname\n\nWrites a binary file as a Go byte slice.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  file2go zx81.rom zx81ROM > zx81_rom.go\n")
		fmt.Fprintf(os.Stderr, "  file2go -o zx81_rom.go -pkg roms zx81.rom ZX81\n")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	conv := NewConverter()
	conv.pkg = *pkg
	conv.noHeader = *noHeader

	output, err := conv.ConvertFileFromPath(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *outFile == "" {
		os.Stdout.Write(output)
		return
	}
	if err := os.WriteFile(*outFile, output, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", *outFile, err)
		os.Exit(1)
	}
}
