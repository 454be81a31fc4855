package main

import (
	"context"
	"io"
	"os"

	revoice "github.com/alnah/go-revoice"
)

// invoiceGenerator is the part of *revoice.Generator the CLI drives.
type invoiceGenerator interface {
	GenerateBatch(ctx context.Context, jobs []revoice.Job, workers int) []revoice.BatchResult
}

// Compile-time interface implementation check.
var _ invoiceGenerator = (*revoice.Generator)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewGenerator builds the generator used by the generate command.
	NewGenerator func(opts ...revoice.Option) (invoiceGenerator, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...revoice.Option) (invoiceGenerator, error) {
			return revoice.NewGenerator(opts...)
		},
	}
}
