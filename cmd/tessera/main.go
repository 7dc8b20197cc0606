// tessera transcodes a value of one of its built-in types between wire
// formats, or prints the shape of a type.
//
// Input is read from --in (default stdin) in the --from format, decoded with
// the codec of --type and written to stdout in the --to format.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"tessera"
	"tessera/format"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	typeName      string
	from          string
	to            string
	in            string
	hexIn         bool
	hexOut        bool
	describe      bool
	list          bool
	ignoreUnknown bool
	debug         bool
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("tessera", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.typeName, "type", "t", "", "registered type to decode and encode")
	flagSet.StringVarP(&opts.from, "from", "f", "json", "input format")
	flagSet.StringVarP(&opts.to, "to", "o", "json", "output format")
	flagSet.StringVar(&opts.in, "in", "", "read input from this file instead of stdin")
	flagSet.BoolVar(&opts.hexIn, "hex-in", false, "input is hex encoded")
	flagSet.BoolVar(&opts.hexOut, "hex", false, "hex encode the output")
	flagSet.BoolVar(&opts.describe, "describe", false, "print the descriptor of --type and exit")
	flagSet.BoolVar(&opts.list, "list", false, "list formats and types and exit")
	flagSet.BoolVar(&opts.ignoreUnknown, "ignore-unknown", false, "skip input members that match no field")
	flagSet.BoolVar(&opts.debug, "debug", false, "log debug records to stderr")
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return errors.Errorf("unexpected argument: %s", rest[0])
	}

	logger := newLogger(opts.debug)
	formatOpts := []format.Option{format.WithLogger(logger)}
	if opts.ignoreUnknown {
		formatOpts = append(formatOpts, format.IgnoreUnknownKeys())
	}
	catalog := tessera.NewCatalog(formatOpts...)
	if err := registerTypes(catalog); err != nil {
		return err
	}

	if opts.list {
		fmt.Fprintf(stdout, "formats: %s\n", strings.Join(catalog.Formats(), ", "))
		fmt.Fprintf(stdout, "types:   %s\n", strings.Join(catalog.Types(), ", "))
		return nil
	}
	if opts.typeName == "" {
		return errors.New("--type is required")
	}
	if opts.describe {
		d, err := catalog.Describe(opts.typeName)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, d)
		return nil
	}

	input, err := readInput(opts, stdin)
	if err != nil {
		return err
	}
	logger.Debug("transcoding", "type", opts.typeName, "from", opts.from, "to", opts.to, "bytes", len(input))

	out, err := catalog.Transcode(opts.typeName, opts.from, opts.to, input)
	if err != nil {
		return errors.Wrapf(err, "%s %s -> %s", opts.typeName, opts.from, opts.to)
	}
	if opts.hexOut {
		out = []byte(hex.EncodeToString(out) + "\n")
	}
	_, err = stdout.Write(out)
	return err
}

func readInput(opts options, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if opts.in != "" {
		data, err = os.ReadFile(opts.in)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if !opts.hexIn {
		return data, nil
	}
	decoded, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrap(err, "decoding hex input")
	}
	return decoded, nil
}

func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return slog.New(devslog.NewHandler(os.Stderr, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true},
	}))
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tessera converts values of built-in types between wire formats.

Usage:
  tessera --type NAME [--from FORMAT] [--to FORMAT] [flags] < input

Examples:
  # JSON to CBOR, hex encoded
  echo '{"r":245,"g":250,"b":254}' | tessera -t color -o cbor --hex

  # Show the shape of a type
  tessera -t color --describe

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
