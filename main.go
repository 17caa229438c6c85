//go:build linux && amd64

package main

import (
	"github.com/bobuhiro11/gokvm-bindings/flag"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := flag.Parse(); err != nil {
		logrus.Fatal(err)
	}
}
