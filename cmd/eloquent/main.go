package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	eloquent "github.com/x1957/eloquent"
)

func main() {
	root := &cobra.Command{
		Use:   "eloquent",
		Short: "Eloquent is a small Lisp: reader, compiler, and bytecode VM",
	}
	root.AddCommand(replCmd(), runCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newUniverse() (*eloquent.Universe, error) {
	u := eloquent.NewUniverse()
	if err := u.Init(); err != nil {
		return nil, err
	}
	return u, nil
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newUniverse()
			if err != nil {
				return err
			}
			reader := eloquent.NewReader(u, u.StdinPort.Port)
			for {
				fmt.Fprintf(os.Stdout, "%s> ", u.Current.Name)
				form, err := reader.Read()
				if err == io.EOF {
					fmt.Fprintln(os.Stdout)
					return nil
				}
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				val, err := u.Eval(form)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				fmt.Fprintln(os.Stdout, eloquent.Write(val))
			}
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "evaluate a file and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			u, err := newUniverse()
			if err != nil {
				return err
			}
			port := eloquent.NewPort(eloquent.NewMemReader(data), args[0])
			reader := eloquent.NewReader(u, port)
			for {
				form, err := reader.Read()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				if _, err := u.Eval(form); err != nil {
					return err
				}
			}
		},
	}
}
