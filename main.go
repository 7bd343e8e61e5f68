package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/heathj/htmllex/parser"
)

func main() {
	in := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			logrus.WithError(err).Fatal("opening input")
		}
		defer f.Close()
		in = f
	}

	b, err := io.ReadAll(in)
	if err != nil {
		logrus.WithError(err).Fatal("reading input")
	}

	root, parseErrors, err := parser.Parse(string(b))
	for _, pe := range parseErrors {
		logrus.WithField("position", pe.Position).Warn(pe.Kind)
	}
	if err != nil {
		logrus.WithError(err).Fatal("parsing input")
	}
	fmt.Println(root)
}
