package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lixenwraith/navgrid/core"
)

func main() {
	// Restore the terminal before the crash report if the UI was running
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "navsim: %v\n", err)
		os.Exit(1)
	}
}
