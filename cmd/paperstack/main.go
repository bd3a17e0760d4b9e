package main

import (
	"os"
	"time"
)

func init() {
	time.Local = time.UTC
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
