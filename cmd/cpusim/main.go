package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/cpusim/config"
	"github.com/ezrec/cpusim/emulator"
	"github.com/ezrec/cpusim/internal"
	"github.com/ezrec/cpusim/script"
	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

func main() {
	var input string
	var exec string
	var cfgFile string
	var lang string
	var step bool
	var keepGoing bool
	var verbose bool

	flag.StringVar(&input, "i", "-", "Program file (- for stdin)")
	flag.StringVar(&exec, "x", "", "Starlark script to execute")
	flag.StringVar(&cfgFile, "c", "", "YAML config file")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")
	flag.BoolVar(&step, "s", false, "Step mode, print state after every line")
	flag.BoolVar(&keepGoing, "k", false, "Continue past failing lines in batch mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := &config.Config{
		Mode:   config.MODE_BATCH,
		Policy: emulator.POLICY_ABORT.String(),
	}
	if len(cfgFile) != 0 {
		var err error
		cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			log.Fatalf("%v: %v", cfgFile, err)
		}
	}

	// Flags override the config file.
	fromInput := len(cfgFile) == 0
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "i":
			fromInput = true
		case "s":
			if step {
				cfg.Mode = config.MODE_STEP
			}
		case "k":
			if keepGoing {
				cfg.Policy = emulator.POLICY_CONTINUE.String()
			}
		case "v":
			cfg.Verbose = verbose
		case "lang":
			cfg.Language = lang
		}
	})

	if len(cfg.Language) != 0 {
		translate.SetLanguage(cfg.Language)
	}

	if len(exec) != 0 {
		sc := script.NewScript()
		sc.Verbose = cfg.Verbose
		sc.Output = os.Stdout
		_, err := sc.Exec(exec, nil)
		if err != nil {
			var evalErr *starlark.EvalError
			if errors.As(err, &evalErr) {
				log.Fatalf("%v", evalErr.Backtrace())
			}
			log.Fatalf("%v: %v", exec, err)
		}
		return
	}

	policy, err := cfg.ParsePolicy()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	var lines []string
	if fromInput {
		lines, err = readProgram(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	} else {
		lines, err = cfg.Lines()
		if err != nil {
			log.Fatalf("%v: %v", cfgFile, err)
		}
	}

	emu := emulator.NewSession()
	emu.Verbose = cfg.Verbose
	emu.Policy = policy
	emu.Load(lines)

	if cfg.Step() {
		for n := 1; ; n++ {
			continues, message := emu.Step()
			fmt.Printf("%03d: %v\n", n, message)
			printState(os.Stdout, emu)
			if !continues {
				break
			}
		}
		return
	}

	err = emu.Run()
	if err != nil && policy == emulator.POLICY_ABORT {
		log.Fatalf("%v: %v", input, err)
	}

	printState(os.Stdout, emu)

	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			log.Printf("%v: %v", input, line)
		}
		os.Exit(1)
	}
}

// readProgram reads program lines from a file, or stdin for "-".
func readProgram(path string) (lines []string, err error) {
	if path == "-" {
		return internal.ReadLines(os.Stdin)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return internal.ReadLines(inf)
}

// printState prints the register file and memory of the session.
func printState(out io.Writer, emu *emulator.Session) {
	registers := emu.Registers()
	memory := emu.Memory()

	fmt.Fprintln(out, f("Register File : %v", joinInts(registers[:])))
	fmt.Fprintln(out, f("Memory : %v", joinInts(memory[:])))
}

func joinInts(values []int) string {
	strs := make([]string, len(values))
	for n, value := range values {
		strs[n] = fmt.Sprintf("%d", value)
	}

	return strings.Join(strs, ", ")
}
