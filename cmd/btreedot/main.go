// Command btreedot builds a tree from key=value arguments (or keys read
// from stdin, one per line) and writes its structure in the DOT graph
// description language, for rendering with graphviz:
//
//	btreedot 1=one 2=two 3=three | dot -Tsvg > tree.svg
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	btreeslab "github.com/timothee-haudebourg/btree-slab"
)

var (
	order       int
	asSet       bool
	stats       bool
	fingerprint bool
)

var rootCmd = &cobra.Command{
	Use:   "btreedot [key=value ...]",
	Short: "Render a slab B-tree as a DOT graph",
	Long: `btreedot inserts the given key=value pairs (or keys read from stdin,
one per line) into an ordered slab-backed B-tree and writes the resulting
node structure to stdout in the DOT graph description language.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := readPairs(args)
		if err != nil {
			return err
		}

		m := btreeslab.New[string, string](btreeslab.WithOrder(order))
		for _, p := range pairs {
			m.Insert(p[0], p[1])
		}

		if asSet {
			s := btreeslab.NewSet[string](btreeslab.WithOrder(order))
			for _, p := range pairs {
				s.Insert(p[0])
			}
			if err := s.Dot(os.Stdout); err != nil {
				return err
			}
		} else {
			if err := m.Dot(os.Stdout); err != nil {
				return err
			}
		}
		fmt.Println()

		if stats {
			st := m.Stats()
			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(os.Stderr, "%s %d entries, order %d, %d nodes (%d leaves), height %d\n",
				bold("tree:"), m.Len(), order, st.Live, st.Leaves, st.Height)
		}
		if fingerprint {
			fmt.Fprintf(os.Stderr, "fingerprint: %016x\n", m.Fingerprint())
		}
		return nil
	},
}

func readPairs(args []string) ([][2]string, error) {
	var pairs [][2]string
	if len(args) > 0 {
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok {
				value = key
			}
			if key == "" {
				return nil, fmt.Errorf("empty key in argument %q", arg)
			}
			pairs = append(pairs, [2]string{key, value})
		}
		return pairs, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			value = key
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, scanner.Err()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("btreedot: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&order, "order", btreeslab.DefaultOrder, "Knuth order of the tree (at least 4)")
	rootCmd.Flags().BoolVar(&asSet, "set", false, "treat inputs as set keys, ignoring values")
	rootCmd.Flags().BoolVar(&stats, "stats", false, "print entry count to stderr")
	rootCmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print the structural fingerprint to stderr")
	rootCmd.SilenceUsage = true
}
