// Chmgen generates code for perfect hash functions from a file with keys
// and a code template.
//
// Usage:
//
//	chmgen [options] KEYS_FILE [TMPL_FILE]
//
// If no template file is provided, a builtin Go template is processed and
// the output is written to stdout. Template filenames must contain `tmpl`;
// by default the output filename is derived by substituting `tmpl` with
// `code`.
//
// Flags:
//
//	-delimiter  Delimiter for list items in output (default: ", ")
//	-indent     Spaces at the beginning of wrapped lines (default: 4)
//	-width      Maximal width of generated lists (default: 76)
//	-comment    Comment marker in the keys file (default: #)
//	-splitby    Column separator in the keys file (default: ,)
//	-keycol     1-based key column in the keys file (default: 1)
//	-trials     Trials before the table size is increased (default: 50)
//	-hft        Hash function type: 1 string salt, 2 integer salt (default: 1)
//	-pow2       Only use powers of 2 for the table size
//	-seed       Search seed; 0 selects the built-in default
//	-workers    Goroutines running trials concurrently (default: 1)
//	-manifest   Also write a JSON build manifest to FILE
//	-e          Compile and run the generated code as a self test
//	-o          Output FILE; `std` means stdout, `no` suppresses output
//	-v          Verbose output
//	-V          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tamirms/chmgen"
)

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `Usage: chmgen [options] KEYS_FILE [TMPL_FILE]

Generates code for perfect hash functions from a file with keys and a code
template. If no template file is provided, a builtin Go template is
processed and the output is written to stdout.

Options:
`)
	flag.PrintDefaults()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chmgen:", err)
		os.Exit(1)
	}
}

func run() error {
	delimiter := flag.String("delimiter", ", ", "delimiter for list items in output")
	indent := flag.Int("indent", 4, "spaces at the beginning of wrapped continuation lines")
	width := flag.Int("width", 76, "maximal width of generated lists")
	comment := flag.String("comment", "#", "comment marker in KEYS_FILE; comments run to end of line")
	splitby := flag.String("splitby", ",", "column separator in KEYS_FILE")
	keycol := flag.Int("keycol", 1, "1-based column in KEYS_FILE containing the keys")
	trials := flag.Int("trials", 50, "trials before the table size is increased; more trials\nkeep the table smaller but search longer")
	hft := flag.Int("hft", 1, "hash function type: 1 (string salt) or 2 (integer salt)")
	pow2 := flag.Bool("pow2", false, "only use powers of 2 for the table size")
	seed := flag.Uint64("seed", 0, "search seed; 0 selects the built-in default")
	workers := flag.Int("workers", 1, "goroutines running trials concurrently")
	manifest := flag.String("manifest", "", "also write a JSON build manifest to `FILE`")
	execute := flag.Bool("e", false, "compile and run the generated code as a self test\n(builtin templates only emit Go)")
	output := flag.String("o", "", "output `FILE`; std means stdout, no suppresses output\n(default: TMPL_FILE with tmpl replaced by code, or std)")
	verbose := flag.Bool("v", false, "verbose output")
	version := flag.Bool("V", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("chmgen version:", chmgen.Version)
		return nil
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		return fmt.Errorf("expected KEYS_FILE and optional TMPL_FILE, got %d arguments", flag.NArg())
	}
	keysFile := flag.Arg(0)
	tmplFile := flag.Arg(1)

	if *trials <= 0 {
		return fmt.Errorf("trials before increasing the table size has to be larger than zero")
	}
	if *keycol < 1 {
		return fmt.Errorf("key column numbers start at 1, got %d", *keycol)
	}
	var kind chmgen.HashKind
	switch *hft {
	case 1:
		kind = chmgen.HashStrSalt
	case 2:
		kind = chmgen.HashIntSalt
	default:
		return fmt.Errorf("hash function type %d not implemented", *hft)
	}
	if tmplFile != "" && !strings.Contains(tmplFile, "tmpl") {
		return fmt.Errorf("template filename %q does not contain 'tmpl'", tmplFile)
	}

	if *verbose {
		fmt.Printf("keys file = %q\n", keysFile)
	}
	keys, err := chmgen.ReadTable(keysFile, chmgen.ReaderOptions{
		Comment: *comment,
		SplitBy: *splitby,
		KeyCol:  *keycol,
	})
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("number of keys: %d\n", len(keys))
	}

	if kind == chmgen.HashStrSalt && len(keys) > chmgen.MaxRecommendedStrSaltKeys {
		fmt.Fprintf(os.Stderr, `WARNING: you have %d keys
         -hft=1 is likely to fail for so many keys
         please use -hft=2 instead
`, len(keys))
	}

	var template string
	if tmplFile != "" {
		if *verbose {
			fmt.Printf("template file = %q\n", tmplFile)
		}
		template, err = chmgen.ReadTemplate(tmplFile)
		if err != nil {
			return err
		}
	}

	outname := *output
	if outname == "" {
		if tmplFile != "" {
			outname = strings.ReplaceAll(tmplFile, "tmpl", "code")
		} else {
			outname = "std"
		}
	}
	if *verbose {
		fmt.Printf("output = %q\n", outname)
	}

	opts := []chmgen.Option{
		chmgen.WithHashKind(kind),
		chmgen.WithTrials(*trials),
		chmgen.WithWorkers(*workers),
	}
	if *pow2 {
		opts = append(opts, chmgen.WithPow2())
	}
	if *seed != 0 {
		opts = append(opts, chmgen.WithSeed(*seed))
	}

	res, err := chmgen.Generate(keys, opts...)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("acyclic graph found on trial %d\n", res.Trials)
		fmt.Printf("table size = %d\n", res.TableSize)
		fmt.Printf("salt length = %d\n", res.F1.SaltLen())
	}

	code, err := res.Render(template, chmgen.Format{
		Width:     *width,
		Indent:    *indent,
		Delimiter: *delimiter,
	})
	if err != nil {
		return err
	}

	switch outname {
	case "std":
		if _, err := os.Stdout.WriteString(code); err != nil {
			return err
		}
	case "no":
		// Suppressed; useful with -e or -manifest alone.
	default:
		if err := os.WriteFile(outname, []byte(code), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if *manifest != "" {
		m := chmgen.NewManifest(res, []byte(code))
		data, err := m.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*manifest, data, 0o644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	if *execute {
		if *verbose {
			fmt.Println("executing generated code...")
		}
		if err := chmgen.RunCode(context.Background(), code); err != nil {
			return err
		}
		if *verbose {
			fmt.Println("self test passed")
		}
	}
	return nil
}
