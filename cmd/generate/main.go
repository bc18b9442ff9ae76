package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"shorashim.app/game/internal/dictionary"
	"shorashim.app/game/internal/generator"
)

var (
	log = logrus.New()

	dictPath string
	outPath  string
	total    int
	attempts int
	seed     uint64
	logFile  string
	verbose  bool
)

func init() {
	const (
		defaultOut    = "puzzles.json"
		defaultTotal  = 210
		defaultBudget = 100000

		dictUsage     = "root dictionary JSON path (empty = bundled dictionary)"
		outUsage      = "puzzle bank output path"
		totalUsage    = "how many puzzles to mint across all day tiers"
		attemptsUsage = "global generation attempt budget"
	)
	flag.StringVar(&dictPath, "dict", "", dictUsage)
	flag.StringVar(&dictPath, "d", "", dictUsage+" (shorthand)")
	flag.StringVar(&outPath, "out", defaultOut, outUsage)
	flag.StringVar(&outPath, "o", defaultOut, outUsage+" (shorthand)")
	flag.IntVar(&total, "total", defaultTotal, totalUsage)
	flag.IntVar(&total, "n", defaultTotal, totalUsage+" (shorthand)")
	flag.IntVar(&attempts, "attempts", defaultBudget, attemptsUsage)
	flag.Uint64Var(&seed, "seed", 0, "random seed, 0 draws one from crypto/rand")
	flag.StringVar(&logFile, "log-file", "", "mirror logs to this file as rotated JSON")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if verbose {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile == "" {
		return
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to set up file logging: ", err)
	}
	log.AddHook(hook)
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		log.Fatal("unable to draw a random seed: ", err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

func loadDictionary() (*dictionary.Dictionary, error) {
	if dictPath != "" {
		return dictionary.LoadFile(dictPath)
	}
	return dictionary.Default()
}

func main() {
	flag.Parse()

	setupLogging()

	dict, err := loadDictionary()
	if err != nil {
		log.Fatal("unable to load dictionary: ", err)
	}

	if seed == 0 {
		seed = randomSeed()
	}

	log.WithFields(logrus.Fields{
		"roots":    dict.Len(),
		"total":    total,
		"attempts": attempts,
		"seed":     seed,
	}).Info("minting puzzle bank")

	rnd := rand.New(rand.NewPCG(seed, seed))

	b, stats, err := generator.Build(dict, generator.Options{
		TotalTarget: total,
		MaxAttempts: attempts,
	}, rnd)
	if err != nil {
		log.Fatal("unable to build puzzle bank: ", err)
	}

	for tier := 1; tier <= 7; tier++ {
		log.WithFields(logrus.Fields{
			"tier":    tier,
			"puzzles": stats.PerTier[tier],
		}).Debug("tier filled")
	}

	if stats.Produced < stats.Requested {
		log.Warnf(
			"attempt budget exhausted: minted %d of %d puzzles",
			stats.Produced, stats.Requested,
		)
	}

	if err := b.WriteFile(outPath); err != nil {
		log.Fatal("unable to write puzzle bank: ", err)
	}

	log.WithFields(logrus.Fields{
		"path":     outPath,
		"puzzles":  b.TotalPuzzles,
		"attempts": stats.Attempts,
	}).Info("puzzle bank written")
}
