package main

import (
	"fmt"
	"os"

	"github.com/Pam-La/hailstone/internal/commands"
	"github.com/Pam-La/hailstone/internal/logger"
)

const (
	errCommand = 1
	errSetup   = 2
)

func main() {
	log := logger.New("hailstone").WithRunID()

	root, err := commands.NewRootCmd(log, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errSetup)
	}

	err = root.Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errCommand)
	}
}
