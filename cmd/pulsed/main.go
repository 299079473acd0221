package main

import (
	"log"

	"github.com/metricquest/pulse/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
