package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/haiku/cppdemangle"
	"github.com/spf13/cobra"
)

var (
	matchesOnly bool
	noGCC2      bool
	unbuffered  bool
	outputFile  string
	output      io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "cppfilt [symbols...]",
	Short: "Demangle C++ symbol names",
	Long: `cppfilt demangles Itanium C++ ABI and legacy gcc2/ARM mangled
symbol names.

If symbols are given as arguments, each is demangled and printed on
its own line. Otherwise cppfilt reads from stdin and demangles every
mangled name it finds embedded in the input, passing the rest of each
line through unchanged.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: runFilt,
}

func init() {
	rootCmd.Flags().BoolVarP(&matchesOnly, "matches-only", "m", false,
		"only print mangled names that were demangled, omit other output")
	rootCmd.Flags().BoolVar(&noGCC2, "no-gcc2", false, "ignore GCC 2-style symbols")
	rootCmd.Flags().BoolVarP(&unbuffered, "unbuffered", "u", false, "use unbuffered output")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
}

// demangleOne is print_demangled: it strips the extra leading
// underscore c++filt.cpp's mangler-agnostic argument convention
// allows ("__Z..." / "____Z...") before handing the rest to Filter.
func demangleOne(s string) string {
	cxaIn := s
	if strings.HasPrefix(s, "__Z") || strings.HasPrefix(s, "____Z") {
		cxaIn = s[1:]
	}
	return cppdemangle.Filter(cxaIn)
}

func runFilt(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		for _, a := range args {
			fmt.Fprintf(output, "%s\n", demangleOne(a))
		}
		return nil
	}

	var w io.Writer = output
	if !unbuffered {
		bw := bufio.NewWriter(output)
		defer bw.Flush()
		w = bw
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 8192), 1<<20)
	for scanner.Scan() {
		filterLine(w, scanner.Text())
		fmt.Fprintln(w)
	}
	return scanner.Err()
}

// filterLine reimplements c++filt.cpp's per-line scan loop over Go's
// strings package instead of raw pointer arithmetic: repeatedly
// locate the next embedded mangled symbol (Itanium prefix first, then
// — unless noGCC2 — a gcc2 "__" separator), demangle it in place, and
// pass everything else through unchanged.
func filterLine(w io.Writer, line string) {
	cur := 0
	end := len(line)
	needSeparator := false

	for cur != end {
		if matchesOnly && needSeparator {
			fmt.Fprintln(w)
		}
		needSeparator = false

		realCur, found := findEmbeddedSymbol(line[cur:end])
		if !found {
			if !matchesOnly {
				fmt.Fprint(w, line[cur:end])
			}
			return
		}
		realCur += cur

		if !matchesOnly {
			fmt.Fprint(w, line[cur:realCur])
		}
		cur = realCur

		nSym := 0
		for cur+nSym != end && isMangleCharPosix(line[cur+nSym]) {
			nSym++
		}
		if nSym == 0 {
			cur++
			continue
		}

		fmt.Fprint(w, demangleOne(line[cur:cur+nSym]))
		needSeparator = true
		cur += nSym
	}
}

// findEmbeddedSymbol locates the start of the first mangled symbol in
// s, trying the Itanium prefix scan before the gcc2 one exactly as
// c++filt.cpp's main loop does.
func findEmbeddedSymbol(s string) (pos int, found bool) {
	if p, ok := findItaniumPrefix(s); ok {
		return p, true
	}
	if !noGCC2 {
		if p, ok := findGCC2Symbol(s); ok {
			return p, true
		}
	}
	return 0, false
}
