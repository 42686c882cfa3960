// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"estscan-core/decoder"
	"estscan-core/matrix"
	"estscan/internal/clibase"
	"estscan/internal/cliutil"
)

// Matrix location defaults.
const (
	EnvMatrixDir     = "ESTSCANDIR"
	DefaultMatrixDir = "/usr/molbio/share/ESTScan"
	DefaultMatrix    = "Hs.smat"
)

// Options holds all CLI flags and arguments.
type Options struct {
	clibase.Common

	// Matrices
	MatrixFile string
	Floor      int
	NMethod    int
	Percent    float64

	// Decoder
	Transitions  [decoder.NumTransitions]int32
	Ins, Del     int
	Jump         int // equals Floor unless --jump was given
	MinLen       int
	SkipLen      int
	SingleStrand bool

	SkipUncovered bool

	// Report
	Both       float64
	BestOnly   bool
	NoInserted bool
	Width      int
	Output     string // nucleotide report file, "-" = stdout, "" = none
	Translate  string // protein file, "-" = stdout, "" = none
}

// DefaultMatrixPath is $ESTSCANDIR/Hs.smat, falling back to DefaultMatrixDir.
func DefaultMatrixPath() string {
	dir := os.Getenv(EnvMatrixDir)
	if dir == "" {
		dir = DefaultMatrixDir
	}
	return filepath.Join(dir, DefaultMatrix)
}

// MatrixOptions are the parser settings selected on the command line.
func (o Options) MatrixOptions() matrix.Options {
	return matrix.Options{Floor: int32(o.Floor), NMethod: matrix.NMethod(o.NMethod), Percent: o.Percent}
}

// Penalties are the decoder costs selected on the command line.
func (o Options) Penalties() decoder.Penalties {
	var p decoder.Penalties
	p.SetTransitions(o.Transitions)
	p.Ins, p.Del, p.Jump = int32(o.Ins), int32(o.Del), int32(o.Jump)
	return p
}

// ProteinsOnly reports whether only translations go to stdout: -t - with
// the report left on stdout, which cannot carry both.
func (o Options) ProteinsOnly() bool {
	return o.Translate == "-" && (o.Output == "" || o.Output == "-")
}

func register(fs *flag.FlagSet, opt *Options, help *bool) {
	clibase.Register(fs, &opt.Common)

	dm := decoder.Defaults
	opt.Transitions = dm.Transitions()
	fs.StringVar(&opt.MatrixFile, "matrix", DefaultMatrixPath(), "score matrices file")
	fs.StringVar(&opt.MatrixFile, "M", DefaultMatrixPath(), "alias of --matrix")
	fs.IntVar(&opt.Floor, "min-value", int(matrix.DefaultOptions.Floor), "floor for matrix values; also the default jump penalty")
	fs.IntVar(&opt.Floor, "m", int(matrix.DefaultOptions.Floor), "alias of --min-value")
	fs.IntVar(&opt.NMethod, "n-method", int(matrix.DefaultOptions.NMethod), "N score: 0 mean, 1..3 mean of top k, -1..-3 mean of bottom k")
	fs.IntVar(&opt.NMethod, "N", int(matrix.DefaultOptions.NMethod), "alias of --n-method")
	fs.Float64Var(&opt.Percent, "gc-correction", matrix.DefaultOptions.Percent, "widen matrix C+G ranges by this many percent")
	fs.Float64Var(&opt.Percent, "p", matrix.DefaultOptions.Percent, "alias of --gc-correction")

	fs.IntVar(&opt.Del, "deletion", int(dm.Del), "deletion penalty")
	fs.IntVar(&opt.Del, "d", int(dm.Del), "alias of --deletion")
	fs.IntVar(&opt.Ins, "insertion", int(dm.Ins), "insertion penalty")
	fs.IntVar(&opt.Ins, "i", int(dm.Ins), "alias of --insertion")
	tv := transitionsValue{dst: &opt.Transitions}
	fs.Var(tv, "transitions", "eight transition penalties, comma-separated")
	fs.Var(tv, "T", "alias of --transitions")
	fs.IntVar(&opt.Jump, "jump", int(matrix.DefaultOptions.Floor), "structural jump penalty [= --min-value]")
	fs.IntVar(&opt.MinLen, "min-length", 50, "minimum reported segment length")
	fs.IntVar(&opt.MinLen, "l", 50, "alias of --min-length")
	fs.IntVar(&opt.SkipLen, "skip-length", 1, "skip sequences shorter than this")
	fs.IntVar(&opt.SkipLen, "s", 1, "alias of --skip-length")
	fs.BoolVar(&opt.SingleStrand, "single-strand", false, "scan the forward strand only")
	fs.BoolVar(&opt.SingleStrand, "S", false, "alias of --single-strand")
	fs.BoolVar(&opt.SkipUncovered, "skip-uncovered", false, "skip sequences no matrix covers instead of failing")

	fs.Float64Var(&opt.Both, "relative", 1.0, "report segments scoring at least this fraction of the best")
	fs.Float64Var(&opt.Both, "b", 1.0, "alias of --relative")
	fs.BoolVar(&opt.BestOnly, "best-only", false, "one summary line per sequence (text)")
	fs.BoolVar(&opt.BestOnly, "O", false, "alias of --best-only")
	fs.BoolVar(&opt.NoInserted, "no-inserted", false, "drop inserted (lower-case) bases from reported sequences")
	fs.BoolVar(&opt.NoInserted, "n", false, "alias of --no-inserted")
	fs.IntVar(&opt.Width, "width", 60, "sequence line width")
	fs.IntVar(&opt.Width, "w", 60, "alias of --width")
	fs.StringVar(&opt.Output, "output", "-", "report file ('-' = stdout)")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")
	fs.StringVar(&opt.Translate, "translate", "", "protein FASTA file ('-' = stdout)")
	fs.StringVar(&opt.Translate, "t", "", "alias of --translate")

	fs.BoolVar(help, "h", false, "show this help message")
	fs.BoolVar(help, "help", false, "show this help message")
}

// NewFlagSet returns an empty ContinueOnError FlagSet carrying the estscan
// help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	NewUsage(fs, name)
	return fs
}

// NewUsage installs the estscan help text on fs.
func NewUsage(fs *flag.FlagSet, name string) {
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "\nMatrices:")
		fmt.Fprintf(out, "  -M, --matrix file           Score matrices [$%s/%s]\n", EnvMatrixDir, DefaultMatrix)
		fmt.Fprintf(out, "  -m, --min-value int         Floor for matrix values [%s]\n", def("min-value"))
		fmt.Fprintf(out, "  -N, --n-method int          N score: 0 mean, k>0 top-k mean, k<0 bottom-k mean [%s]\n", def("n-method"))
		fmt.Fprintf(out, "  -p, --gc-correction float   Widen C+G ranges by this many percent [%s]\n", def("gc-correction"))

		fmt.Fprintln(out, "\nDecoder:")
		fmt.Fprintf(out, "  -d, --deletion int          Deletion penalty [%s]\n", def("deletion"))
		fmt.Fprintf(out, "  -i, --insertion int         Insertion penalty [%s]\n", def("insertion"))
		fmt.Fprintf(out, "  -T, --transitions list      start>5'UTR,start>CDS,start>3'UTR,5'UTR>CDS,\n")
		fmt.Fprintf(out, "                              5'UTR>end,CDS>3'UTR,CDS>end,3'UTR>end [%s]\n", def("transitions"))
		fmt.Fprintln(out, "      --jump int              Structural jump penalty [= --min-value]")
		fmt.Fprintf(out, "  -l, --min-length int        Minimum reported segment length [%s]\n", def("min-length"))
		fmt.Fprintf(out, "  -s, --skip-length int       Skip sequences shorter than this [%s]\n", def("skip-length"))
		fmt.Fprintf(out, "  -S, --single-strand         Forward strand only [%s]\n", def("single-strand"))
		fmt.Fprintf(out, "      --skip-uncovered        Skip sequences no matrix covers [%s]\n", def("skip-uncovered"))

		fmt.Fprintln(out, "\nReport:")
		fmt.Fprintf(out, "  -b, --relative float        Keep segments scoring >= best*value [%s]\n", def("relative"))
		fmt.Fprintf(out, "  -O, --best-only             Header line of the best match only [%s]\n", def("best-only"))
		fmt.Fprintf(out, "  -n, --no-inserted           Remove inserted (lower-case) bases [%s]\n", def("no-inserted"))
		fmt.Fprintf(out, "  -w, --width int             Sequence line width [%s]\n", def("width"))
		fmt.Fprintf(out, "  -o, --output file           Report file, '-' = stdout [%s]\n", def("output"))
		fmt.Fprintln(out, "  -t, --translate file        Protein FASTA, '-' = stdout; with -o unset only")
		fmt.Fprintln(out, "                              proteins go to stdout")
	})
}

// Examples printed by --examples.
var Examples = []clibase.Example{
	{Desc: "scan ESTs with the human matrices", Cmd: "%[1]s -M Hs.smat ests.fa > ests.cds"},
	{Desc: "proteins only, from a gzipped stream", Cmd: "zcat ests.fa.gz | %[1]s -M Hs.smat -t - -"},
	{Desc: "best hit per sequence, forward strand", Cmd: "%[1]s -M Hs.smat -S -O ests.fa"},
	{Desc: "GFF annotation using 8 workers", Cmd: "%[1]s -M Hs.smat --format gff --threads 8 ests/*.fa"},
}

// ParseArgs registers and parses all flags; formats lists the accepted
// --format values. It returns flag.ErrHelp for -h and
// clibase.ErrPrintedAndExitOK for --examples (see Examples).
func ParseArgs(fs *flag.FlagSet, argv []string, formats []string) (Options, error) {
	var (
		opt  Options
		help bool
	)
	register(fs, &opt, &help)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}

	jumpSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "jump" {
			jumpSet = true
		}
	})
	if !jumpSet {
		opt.Jump = opt.Floor
	}

	posArgs = append(posArgs, fs.Args()...)
	if err := clibase.AfterParse(&opt.Common, posArgs, formats); err != nil {
		return opt, err
	}
	return opt, Validate(opt)
}

// Validate applies the scanner-specific invariants.
func Validate(o Options) error {
	switch {
	case o.MatrixFile == "":
		return errors.New("--matrix is required")
	case !matrix.NMethod(o.NMethod).Valid():
		return fmt.Errorf("--n-method must be between -3 and 3, got %d", o.NMethod)
	case o.Percent < 0:
		return errors.New("--gc-correction must be ≥ 0")
	case o.MinLen < 0:
		return errors.New("--min-length must be ≥ 0")
	case o.SkipLen < 0:
		return errors.New("--skip-length must be ≥ 0")
	case o.Width < 1:
		return errors.New("--width must be ≥ 1")
	case o.Both < 0:
		return errors.New("--relative must be ≥ 0")
	case o.BestOnly && o.Format != "text":
		return errors.New("--best-only requires --format text")
	case o.Output == "" && o.Translate == "":
		return errors.New("nothing to write: give --output or --translate")
	case o.Output != "-" && o.Output != "" && o.Output == o.Translate:
		return fmt.Errorf("--output and --translate name the same file %q", o.Output)
	}
	return nil
}
