package main

import "github.com/printforge/stlsplit/pkg/cli"

func main() {
	cli.Execute()
}
