// Command fz is the process-boundary entry point of spec.md §6: a hand-
// rolled option parser (grounded on the teacher's options.go ParseOptions/
// parseOptions index-pointer idiom) over the flag subset that drives the
// matching core, wired to stdin/stdout and exit codes 0/1/2 (130 is
// reserved and never produced by this non-interactive entry point).
package main

import (
	"errors"
	"strings"

	"github.com/fz-finder/fz/internal/extract"
	"github.com/fz-finder/fz/internal/pattern"
)

// Options holds the parsed command line, limited to the §6 subset this
// module's core actually consumes. Flags outside that subset (layout,
// color, key bindings, preview, tmux — all owned by the out-of-scope
// terminal UI) are not recognized.
type Options struct {
	Query       string
	Filter      string
	FilterSet   bool
	Exact       bool
	CaseMode    pattern.CaseMode
	Multi       bool
	Read0       bool
	Print0      bool
	HeaderLines int
	Nth         []extract.Range
	WithNth     []extract.Range
	Delimiter   extract.Delimiter
	Literal     bool
	ForceV1     bool
	PrintQuery  bool
}

// defaultOptions mirrors the teacher's "smart case, extended search on by
// default" baseline.
func defaultOptions() *Options {
	return &Options{CaseMode: pattern.CaseSmart}
}

// ParseOptions parses args (os.Args[1:]) into Options, following the
// teacher's index-pointer/nextString loop so `--flag=value` and
// `--flag value` are both accepted.
func ParseOptions(args []string) (*Options, error) {
	opts := defaultOptions()

	var i int
	var val *string
	nextString := func(message string) (string, error) {
		defer func() { val = nil }()
		if val != nil {
			return *val, nil
		}
		if len(args) > i+1 {
			i++
			return args[i], nil
		}
		return "", errors.New(message)
	}
	nextRanges := func(message string) ([]extract.Range, error) {
		s, err := nextString(message)
		if err != nil {
			return nil, err
		}
		ranges, ok := extract.ParseRanges(s)
		if !ok {
			return nil, errors.New("invalid field index expression: " + s)
		}
		return ranges, nil
	}

	for ; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--") && strings.IndexByte(arg, '=') > 0 {
			tokens := strings.SplitN(arg, "=", 2)
			arg = tokens[0]
			val = &tokens[1]
		}

		switch arg {
		case "-q", "--query":
			s, err := nextString("query string required")
			if err != nil {
				return nil, err
			}
			opts.Query = s
		case "-f", "--filter":
			s, err := nextString("filter string required")
			if err != nil {
				return nil, err
			}
			opts.Filter = s
			opts.FilterSet = true
		case "-e", "--exact":
			opts.Exact = true
		case "-i":
			opts.CaseMode = pattern.CaseIgnore
		case "+i":
			opts.CaseMode = pattern.CaseRespect
		case "-m", "--multi":
			opts.Multi = true
		case "-0", "--read0":
			opts.Read0 = true
		case "--print0":
			opts.Print0 = true
		case "--print-query":
			opts.PrintQuery = true
		case "--header-lines":
			s, err := nextString("header-lines requires a count")
			if err != nil {
				return nil, err
			}
			n, err := parseUint(s)
			if err != nil {
				return nil, errors.New("invalid --header-lines: " + s)
			}
			opts.HeaderLines = n
		case "-n", "--nth":
			ranges, err := nextRanges("nth requires a field spec")
			if err != nil {
				return nil, err
			}
			opts.Nth = ranges
		case "--with-nth":
			ranges, err := nextRanges("with-nth requires a field spec")
			if err != nil {
				return nil, err
			}
			opts.WithNth = ranges
		case "--delimiter", "-d":
			s, err := nextString("delimiter requires a value")
			if err != nil {
				return nil, err
			}
			opts.Delimiter = extract.Delimiter{Str: &s}
		case "--literal":
			opts.Literal = true
		case "--no-literal":
			opts.Literal = false
		case "--algo":
			s, err := nextString("algo requires a value")
			if err != nil {
				return nil, err
			}
			switch s {
			case "v1":
				opts.ForceV1 = true
			case "v2":
				opts.ForceV1 = false
			default:
				return nil, errors.New("unknown algo: " + s + " (expected v1 or v2)")
			}
		default:
			return nil, errors.New("unknown option: " + arg)
		}
	}

	return opts, nil
}

func parseUint(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errors.New("empty integer")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("not a non-negative integer: " + s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
