// Command distance loads a saved model and interactively prints the
// terms closest to each word typed on stdin. Each line is looked up as
// a single vocabulary word; multi-word lines are not split.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/eske/multivec-go/word2vec"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: distance <model-file>")
		os.Exit(1)
	}

	cfg, err := word2vec.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid default configuration: %v\n", err)
		os.Exit(1)
	}
	m := word2vec.NewModel(cfg)
	if err := m.Load(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load model: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "loaded %d words, dimension %d\n", m.VocabSize(), m.Dimension())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter word (EXIT to break): ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "EXIT" || line == "" {
			break
		}

		results, err := m.Closest(line, 40, word2vec.PolicyInput)
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		fmt.Printf("\n%-40s%s\n", "Word", "Cosine similarity")
		fmt.Println(strings.Repeat("-", 60))
		for _, r := range results {
			fmt.Printf("%-40s%f\n", r.Word, r.Similarity)
		}
	}
}
