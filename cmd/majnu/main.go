package main

import (
	"github.com/majnugame/majnu-go/internal/cli"
)

func main() {
	cli.Execute()
}
