package main

import (
	"github.com/metricquest/pulse/pkg/cli"
)

func main() {
	cli.Execute()
}
