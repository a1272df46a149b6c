// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	ndcell "github.com/isgasho/NDCell"
)

var (
	log     zerolog.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ndcell",
		Short:         "Inspect and rewrite Golly Extended RLE patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(infoCmd(), fmtCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <pattern.rle>",
		Short: "Report the dimensions and population of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := loadPattern(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("rule:       %s\n", orDefault(pattern.Rule, "(none)"))
			fmt.Printf("generation: %d\n", pattern.Generation)
			fmt.Printf("population: %v\n", pattern.Tree.Population())
			cells := pattern.Tree.NonDefaultCells()
			if len(cells) == 0 {
				fmt.Println("bounds:     empty")
				return nil
			}
			lo := cells[0].Clone()
			hi := cells[0].Clone()
			for _, c := range cells[1:] {
				lo = lo.Min(c)
				hi = hi.Max(c)
			}
			fmt.Printf("bounds:     %v\n", ndcell.BigSpan(lo, hi))
			return nil
		},
	}
}

func fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <pattern.rle>",
		Short: "Rewrite a pattern as canonical Extended RLE on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := loadPattern(args[0])
			if err != nil {
				return err
			}
			fmt.Print(ndcell.EncodeRLE(pattern))
			return nil
		},
	}
}

func loadPattern(path string) (*ndcell.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("read pattern file")
	pattern, err := ndcell.DecodeRLE(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().
		Str("population", pattern.Tree.Population().String()).
		Int("nodes", pattern.Tree.Cache().NodeCount()).
		Msg("decoded pattern")
	return pattern, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
