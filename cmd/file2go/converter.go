package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"
)

const bytesPerLine = 16

// Converter renders binary data as a Go byte slice declaration.
type Converter struct {
	pkg      string
	noHeader bool
}

func NewConverter() *Converter {
	return &Converter{pkg: "main"}
}

// Convert writes a Go source file declaring varName as the bytes of data.
func (c *Converter) Convert(w io.Writer, source, varName string, data []byte) error {
	if !token.IsIdentifier(varName) {
		return fmt.Errorf("invalid variable name %q", varName)
	}
	if !token.IsIdentifier(c.pkg) {
		return fmt.Errorf("invalid package name %q", c.pkg)
	}

	bw := bufio.NewWriter(w)
	if !c.noHeader {
		fmt.Fprintf(bw, "// Code generated by file2go from %s. DO NOT EDIT.\n\n", source)
	}
	fmt.Fprintf(bw, "package %s\n\n", c.pkg)
	fmt.Fprintf(bw, "var %s = []byte{", varName)

	for i, b := range data {
		if i%bytesPerLine == 0 {
			bw.WriteString("\n\t")
		} else {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "0x%02x,", b)
	}
	if len(data) > 0 {
		bw.WriteByte('\n')
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// ConvertFileFromPath reads path and returns the generated source.
func (c *Converter) ConvertFileFromPath(path, varName string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := c.Convert(&out, path, varName, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
