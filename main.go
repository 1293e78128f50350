package main

import "github.com/ethanolivertroy/cargo-local-pkgs/cmd"

func main() {
	cmd.Execute()
}
