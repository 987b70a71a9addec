package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/zephyrtronium/texcalc"
	"github.com/zephyrtronium/texcalc/config"
	"github.com/zephyrtronium/texcalc/numeric"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, cfgname string
		with                  [][2]string
		echo, high            bool
		places, verbose       int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringVar(&cfgname, "config", "", "configuration file (default "+config.FileName+" in this or a parent directory)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&high, "high", false, "use high accuracy exponentiation")
	flag.IntVar(&places, "places", -1, "decimal places to round results to (0 to 8)")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.IntVar(&verbose, "v", 0, "log verbosity")
	flag.Parse()
	commonlog.Configure(verbose, nil)

	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "high":
			cfg.HighAccuracy = high
		case "places":
			cfg.Places = places
		}
	})
	if cfg.Places > numeric.MaxPlaces {
		log.Fatalf("cannot round to %d places", cfg.Places)
	}
	cfg.Apply()

	opts := cfg.EvalOptions()
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := texcalc.EvalString(vl, opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		opts = append(opts, texcalc.SetVar(nm, r))
	}
	c := calculator{opts: opts, verb: verb + "\n", places: cfg.Places, echo: echo}

	if inname == "" && flag.NArg() == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
		repl(&c)
		return
	}
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		scan := bufio.NewScanner(f)
		for scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			// Skip blank lines and TeX comments.
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			c.run(line)
		}
		if err := scan.Err(); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}
	for _, arg := range flag.Args() {
		c.run(arg)
	}
	if c.failed {
		os.Exit(1)
	}
}

type calculator struct {
	opts   []texcalc.EvalOption
	verb   string
	places int
	echo   bool
	failed bool
}

// run evaluates one expression and prints its result or error.
func (c *calculator) run(src string) {
	a, err := texcalc.ParseString(src)
	if err != nil {
		c.fail(src, err)
		return
	}
	if c.echo {
		fmt.Printf("%v : ", a)
	}
	e, err := texcalc.NewEvaluator(a, c.opts...)
	if err != nil {
		c.fail(src, err)
		return
	}
	r, err := e.Calculate()
	if err != nil {
		c.fail(src, err)
		return
	}
	if c.places >= 0 {
		r, err = numeric.Round(r, c.places)
		if err != nil {
			c.fail(src, err)
			return
		}
	}
	fmt.Printf(c.verb, r)
}

func (c *calculator) fail(src string, err error) {
	c.failed = true
	fmt.Println(err)
	var ie texcalc.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 {
		fmt.Println(src)
		fmt.Println(strings.Repeat(" ", ie.Pos()-1) + "^")
	}
}

func repl(c *calculator) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	for {
		s, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			log.Fatal(err)
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		line.AppendHistory(s)
		c.run(s)
	}
}

func loadConfig(name string) (*config.Config, error) {
	if name != "" {
		return config.LoadOrDefault(name)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.FindAndLoad(wd)
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
