// Package main provides the d2l command: train a GRU encoder-decoder
// translation model, translate sentences with it, or inspect subword
// tokenization.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/d2l-ai/d2l-go/autodiff"
	"github.com/d2l-ai/d2l-go/backend/cpu"
	"github.com/d2l-ai/d2l-go/data"
	"github.com/d2l-ai/d2l-go/optim"
	"github.com/d2l-ai/d2l-go/text"
	"github.com/d2l-ai/d2l-go/train"
	"github.com/d2l-ai/d2l-go/translate"
)

// toyCorpus is a tiny embedded English-French sample used when no data
// directory is given, enough to smoke-test the full pipeline offline.
const toyCorpus = `go .	va !
hi .	salut !
run !	cours !
run !	courez !
who ?	qui ?
wow !	ça alors !
fire !	au feu !
help !	à l'aide !
jump .	saute .
stop !	ça suffit !
stop !	stop !
wait !	attends !
wait !	attendez !
i see .	je comprends .
i try .	j'essaye .
i won !	j'ai gagné !
i won !	je l'ai emporté !
i'm ok .	je vais bien .
i'm ok .	ça va .
i'm up .	je suis levé .
we try .	on essaye .
be calm .	sois calme !
be calm .	soyez calme !
be cool .	sois détendu !
be fair .	sois juste !
be kind .	sois gentil .
be nice .	sois gentil !
call me .	appelle-moi !
call us .	appelle-nous !
come in .	entrez !
get out !	sors !
go away !	va-t'en !
go away !	dégage !
goodbye !	au revoir !
hang on !	attendez !
he came .	il est venu .
he runs .	il court .
help me .	aidez-moi .
hold on .	attendez .
hug me .	serre-moi dans tes bras !
i fell .	je suis tombée .
i know .	je sais .
i left .	je suis parti .
i lied .	j'ai menti .
i lost .	j'ai perdu .
i paid .	j'ai payé .
i sang .	j'ai chanté .
i swim .	je nage .
`

func main() {
	task := flag.String("task", "train", "Task to run: train, translate, encode")
	dataDir := flag.String("data", "", "Cache directory for the fra-eng corpus ('' = embedded toy corpus)")
	epochs := flag.Int("epochs", 30, "Number of training epochs")
	batchSize := flag.Int("batch", 8, "Batch size")
	lr := flag.Float64("lr", 0.005, "Learning rate")
	optName := flag.String("optimizer", "adam", "Optimizer: sgd or adam")
	clip := flag.Float64("clip", 1.0, "Max global gradient norm (0 disables clipping)")
	numSteps := flag.Int("num-steps", 10, "Sequence length after truncation/padding")
	embedSize := flag.Int("embed", 32, "Embedding size")
	numHiddens := flag.Int("hidden", 32, "GRU hidden size")
	numLayers := flag.Int("layers", 2, "GRU layers")
	useAttention := flag.Bool("attention", false, "Use additive attention in the decoder")
	dropout := flag.Float64("dropout", 0.1, "Attention dropout probability")
	maxExamples := flag.Int("examples", 600, "Max training pairs (0 = all)")
	minFreq := flag.Int("min-freq", 1, "Minimum token frequency for the vocabularies")
	sentence := flag.String("sentence", "i'm ok .", "Sentence to translate after training")
	encoding := flag.String("encoding", "cl100k_base", "Tiktoken encoding for the encode task")
	flag.Parse()

	switch *task {
	case "train", "translate":
		runTraining(*dataDir, *epochs, *batchSize, float32(*lr), *optName, float32(*clip),
			*numSteps, *embedSize, *numHiddens, *numLayers, *useAttention, float32(*dropout),
			*maxExamples, *minFreq, *sentence)
	case "encode":
		runEncode(*encoding, flag.Args())
	default:
		fmt.Fprintf(os.Stderr, "unknown task %q (want train, translate or encode)\n", *task)
		os.Exit(2)
	}
}

func runTraining(dataDir string, epochs, batchSize int, lr float32, optName string, clip float32,
	numSteps, embedSize, numHiddens, numLayers int, useAttention bool, dropout float32,
	maxExamples, minFreq int, sentence string) {

	raw := toyCorpus
	if dataDir != "" {
		fmt.Printf("Downloading fra-eng corpus into %s...\n", dataDir)
		var err error
		raw, err = data.LoadFraEng(dataDir)
		if err != nil {
			log.Fatalf("load corpus: %v", err)
		}
	}

	corpus := data.NewTranslationCorpus(raw, maxExamples, minFreq)
	fmt.Printf("Corpus: %d pairs, source vocab %d, target vocab %d\n",
		len(corpus.Source), corpus.SrcVocab.Len(), corpus.TgtVocab.Len())

	backend := autodiff.New(cpu.New())
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, numSteps, backend)
	loader := data.NewLoader(src, tgt, srcLens, tgtLens, batchSize, 42, backend)

	encoder := translate.NewSeq2SeqEncoder(corpus.SrcVocab.Len(), embedSize, numHiddens, numLayers, backend)
	var decoder translate.Decoder[*autodiff.Backend[*cpu.Backend]]
	if useAttention {
		decoder = translate.NewAttentionDecoder(corpus.TgtVocab.Len(), embedSize, numHiddens, numLayers, dropout, backend)
		fmt.Println("Decoder: GRU with additive attention")
	} else {
		decoder = translate.NewSeq2SeqDecoder(corpus.TgtVocab.Len(), embedSize, numHiddens, numLayers, backend)
		fmt.Println("Decoder: GRU with fixed context")
	}

	params := append(encoder.Parameters(), decoder.Parameters()...)
	var optimizer optim.Optimizer
	switch optName {
	case "sgd":
		optimizer = optim.NewSGD(params, optim.SGDConfig{LR: lr})
	case "adam":
		optimizer = optim.NewAdam(params, optim.AdamConfig{LR: lr})
	default:
		log.Fatalf("unknown optimizer %q (want sgd or adam)", optName)
	}
	fmt.Printf("Training: %d epochs, batch %d, lr %.4f, clip %.1f, optimizer %s\n",
		epochs, batchSize, lr, clip, optName)

	recorder := train.NewRecorder(5, os.Stdout)
	events := make(chan train.Event, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		recorder.Consume(events)
	}()

	result := translate.Train(encoder, decoder, loader, corpus.TgtVocab, optimizer,
		translate.TrainConfig{Epochs: epochs, GradClip: clip}, backend, events)
	close(events)
	wg.Wait()
	recorder.Draw()
	fmt.Printf("Final loss %.4f, %.0f tokens/sec\n", result.Loss, result.TokensPerSec)

	for _, s := range []string{sentence, "go .", "i lost ."} {
		pred := translate.PredictGreedy(encoder, decoder, s, corpus.SrcVocab, corpus.TgtVocab, numSteps, backend)
		fmt.Printf("%-16s => %s\n", s, pred)
		if ref := lookupReference(corpus, s); ref != "" {
			fmt.Printf("%-16s    bleu %.3f (ref: %s)\n", "", translate.BLEU(pred, ref, 2), ref)
		}
	}

	if ad, ok := decoder.(*translate.AttentionDecoder[*autodiff.Backend[*cpu.Backend]]); ok {
		fmt.Printf("Attention steps recorded: %d\n", len(ad.AttentionWeights()))
	}
}

// lookupReference finds the first reference translation of a source
// sentence in the corpus, if any.
func lookupReference(corpus *data.TranslationCorpus, sentence string) string {
	want := strings.Fields(strings.ToLower(sentence))
	for i, src := range corpus.Source {
		if len(src) != len(want) {
			continue
		}
		match := true
		for j := range src {
			if src[j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return strings.Join(corpus.Target[i], " ")
		}
	}
	return ""
}

func runEncode(encoding string, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "encode: pass the text to encode as arguments")
		os.Exit(2)
	}
	sub, err := text.NewSubword(encoding)
	if err != nil {
		log.Fatalf("load encoding: %v", err)
	}
	input := strings.Join(args, " ")
	ids := sub.Encode(input)
	fmt.Printf("%s => %v (%d tokens)\n", input, ids, len(ids))
	fmt.Printf("decoded: %s\n", sub.Decode(ids))
}
