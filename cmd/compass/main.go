package main

import (
	"github.com/summonerscompass/compass-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
