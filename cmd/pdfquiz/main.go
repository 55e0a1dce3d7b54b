package main

import (
	"context"
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pdfquiz:", err)
		os.Exit(1)
	}
}
