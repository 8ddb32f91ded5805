// Command word2vec trains a monolingual embedding model from a plain
// text corpus and writes the trained vectors (and optionally the
// whole model) to disk.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/eske/multivec-go/word2vec"
)

func argPos(flag string, args []string) int {
	for i, a := range args {
		if a == flag {
			if i == len(args)-1 {
				fmt.Fprintf(os.Stderr, "argument missing for %s\n", flag)
				os.Exit(1)
			}
			return i
		}
	}
	return -1
}

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: word2vec -train <file> -output <file> [options]\n"+
			"Options:\n"+
			"  -size <int>          embedding dimension (default 100)\n"+
			"  -window <int>        context window size (default 5)\n"+
			"  -sample <float>      subsampling threshold (default 1e-3)\n"+
			"  -hs <0/1>            use hierarchical softmax (default 0)\n"+
			"  -negative <int>      negative samples (default 5)\n"+
			"  -threads <int>       training threads (default 4)\n"+
			"  -iter <int>          training iterations (default 5)\n"+
			"  -min-count <int>     minimum word occurrences (default 5)\n"+
			"  -alpha <float>       starting learning rate (default 0.025)\n"+
			"  -cbow <0/1>          use CBOW over skip-gram (default 1)\n"+
			"  -sent-vec <0/1>      jointly train sentence vectors (default 0)\n"+
			"  -sync <0/1>          enable deterministic synchronized SGD (default 0)\n"+
			"  -binary <0/1>        save vectors in binary format (default 0)\n"+
			"  -save-model <file>   also save the full model (vocabulary + all weights)\n"+
			"  -verbose <0/1>       enable progress logging (default 0)")
		os.Exit(1)
	}

	var trainFile, outputFile, saveModelFile string
	dimension, window, negative, threads, iterations := 100, 5, 5, 4, 5
	minCount := int64(5)
	sample, alpha := 1e-3, 0.025
	hs, cbow, sentVec, sync, binary, verbose := 0, 1, 0, 0, 0, 0

	if i := argPos("-train", args); i >= 0 {
		trainFile = args[i+1]
	}
	if i := argPos("-output", args); i >= 0 {
		outputFile = args[i+1]
	}
	if i := argPos("-save-model", args); i >= 0 {
		saveModelFile = args[i+1]
	}
	if i := argPos("-size", args); i >= 0 {
		dimension, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-window", args); i >= 0 {
		window, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-sample", args); i >= 0 {
		sample, _ = strconv.ParseFloat(args[i+1], 64)
	}
	if i := argPos("-hs", args); i >= 0 {
		hs, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-negative", args); i >= 0 {
		negative, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-threads", args); i >= 0 {
		threads, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-iter", args); i >= 0 {
		iterations, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-min-count", args); i >= 0 {
		n, _ := strconv.Atoi(args[i+1])
		minCount = int64(n)
	}
	if i := argPos("-alpha", args); i >= 0 {
		alpha, _ = strconv.ParseFloat(args[i+1], 64)
	}
	if i := argPos("-cbow", args); i >= 0 {
		cbow, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-sent-vec", args); i >= 0 {
		sentVec, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-sync", args); i >= 0 {
		sync, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-binary", args); i >= 0 {
		binary, _ = strconv.Atoi(args[i+1])
	}
	if i := argPos("-verbose", args); i >= 0 {
		verbose, _ = strconv.Atoi(args[i+1])
	}

	if trainFile == "" || outputFile == "" {
		fmt.Fprintln(os.Stderr, "-train and -output are required")
		os.Exit(1)
	}

	cfg, err := word2vec.NewConfig(
		word2vec.WithDimension(dimension),
		word2vec.WithWindowSize(window),
		word2vec.WithSubsampling(sample),
		word2vec.WithHierarchicalSoftmax(hs != 0),
		word2vec.WithNegative(negative),
		word2vec.WithThreads(threads),
		word2vec.WithIterations(iterations),
		word2vec.WithMinCount(minCount),
		word2vec.WithLearningRate(alpha),
		word2vec.WithSkipGram(cbow == 0),
		word2vec.WithSentVector(sentVec != 0),
		word2vec.WithSyncSGD(sync != 0),
		word2vec.WithVerbose(verbose != 0),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	m := word2vec.NewModel(cfg)
	if err := m.Train(trainFile, true); err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}

	if binary != 0 {
		err = m.SaveVectorsBin(outputFile, word2vec.PolicyInput, false)
	} else {
		err = m.SaveVectors(outputFile, word2vec.PolicyInput, false)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to save vectors: %v\n", err)
		os.Exit(1)
	}

	if saveModelFile != "" {
		if err := m.Save(saveModelFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save model: %v\n", err)
			os.Exit(1)
		}
	}
}
