package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"qwiic-go/config"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

const shellHelp = `Commands:
  scan                      addresses that acknowledge
  list                      connected addresses with driver types
  available [addr...]       registered driver types
  probe <addr>              liveness of one address
  create <selector> [--read]
  output table|json|yaml    switch output format
  help
  exit`

var errExit = errors.New("exit")

func (a *app) shell() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "qwiic> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	prev := a.out
	a.out = rl.Stdout()
	defer func() { a.out = prev }()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt && line != "" {
				continue
			}
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}
		switch err := a.runLine(line); {
		case errors.Is(err, errExit):
			return nil
		case err != nil:
			fmt.Fprintf(rl.Stderr(), "Error: %v\n", err)
		}
	}
}

// runLine tokenises one shell line and dispatches it.
func (a *app) runLine(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "scan":
		return a.scan(args)
	case "list", "ls":
		return a.list(args)
	case "available":
		return a.available(args)
	case "probe":
		if len(args) != 1 {
			return errors.New("usage: probe <addr>")
		}
		return a.probe(args)
	case "create":
		read := false
		rest := args[:0]
		for _, s := range args {
			if s == "--read" || s == "-r" {
				read = true
				continue
			}
			rest = append(rest, s)
		}
		if len(rest) != 1 {
			return errors.New("usage: create <selector> [--read]")
		}
		return a.create(rest, read)
	case "output":
		if len(args) != 1 {
			return errors.New("usage: output table|json|yaml")
		}
		switch args[0] {
		case config.OutputTable, config.OutputJSON, config.OutputYAML:
			a.format = args[0]
			return nil
		}
		return fmt.Errorf("unknown output format %q", args[0])
	case "help", "?":
		fmt.Fprintln(a.out, shellHelp)
		return nil
	case "exit", "quit":
		return errExit
	}
	return fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
}
