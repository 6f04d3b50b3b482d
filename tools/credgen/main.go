// Package main writes obfuscated credential files from plain operator lists.
//
// Each input line holds the fields of one record separated by "|", password
// first: password|id|surname|name|prefix. Blank lines and lines starting
// with "#" are skipped. Every record becomes one hex line of the output.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/credfile"
)

func main() {
	input := pflag.StringP("input", "i", "-", "plain record list (- for stdin)")
	output := pflag.StringP("output", "o", "SZV.dat", "credential file to write (- for stdout)")
	pflag.Parse()

	if err := run(*input, *output); err != nil {
		fmt.Fprintln(os.Stderr, "credgen:", err)
		os.Exit(1)
	}
}

func run(input, output string) error {
	in := io.Reader(os.Stdin)
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	if output == "-" {
		_, err := generate(in, os.Stdout)
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	n, err := generate(in, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d records written to %s\n", n, output)
	return nil
}

// generate encodes every record of r as a line of w and returns the count.
func generate(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	n, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if fields[0] == "" {
			return n, fmt.Errorf("line %d: empty password", lineNo)
		}
		encoded, err := credfile.EncodeRecord(fields)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := fmt.Fprintln(bw, encoded); err != nil {
			return n, err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	return n, bw.Flush()
}
