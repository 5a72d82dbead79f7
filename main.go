package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"qsim/quantum"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    *Config
	logger *log.Logger
	out    io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:           "qsim",
		Short:         "Dense state-vector quantum register simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(a.out, a.logger, a.cfg)
		},
	}
	registerFlags(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v, err := newViper(rootCmd.PersistentFlags())
		if err != nil {
			return err
		}
		if a.cfg, err = loadConfig(v); err != nil {
			return err
		}
		if a.cfg.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		a.logger = newLogger(errOut, a.cfg)
		return nil
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Print the gate walkthrough transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(a.out, a.logger, a.cfg)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run [file]",
		Short: "Apply a step script and print the register after every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFile(args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui [file]",
		Short: "Step through gates interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(args)
		},
	})

	return rootCmd
}

func readProgram(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseProgram(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// runFile prints the starting register and the register after each step.
// Rejected steps are logged and skipped; the command then fails.
func (a *app) runFile(path string) error {
	p, err := readProgram(path)
	if err != nil {
		return err
	}
	r, err := p.NewRegister()
	if err != nil {
		return err
	}
	return runProgram(a.out, a.logger, a.cfg, p, r)
}

func runProgram(w io.Writer, logger *log.Logger, cfg *Config, p *Program, r *quantum.Register) error {
	t := newTranscript(w, logger, optionsFromConfig(cfg))
	t.show(r)

	err := p.Run(r, func(s Step, err error) {
		t.title(s.String())
		if err != nil {
			logger.Error("step rejected", "line", s.Line, "step", s.Name, "qubits", s.Qubits, "err", err)
			t.println(errorStyle.Render("rejected: " + err.Error()))
			t.println("")
			return
		}
		logger.Debug("step applied", "line", s.Line, "step", s.Name, "qubits", s.Qubits)
		t.println(renderState(r, t.opts))
	})
	return errors.Join(t.err(), err)
}

func (a *app) runTUI(args []string) error {
	p := &Program{NumQubits: 2}
	savePath := "program.qasm"
	if len(args) == 1 {
		var err error
		if p, err = readProgram(args[0]); err != nil {
			return err
		}
		savePath = args[0]
	}

	m, err := newModel(p, optionsFromConfig(a.cfg), savePath)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
