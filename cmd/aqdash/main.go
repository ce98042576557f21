package main

import "github.com/smartcity/aqdash/internal/cli"

func main() {
	cli.Execute()
}
