package main

import "github.com/ksk1130/tsvloggen/internal/cmd"

func main() {
	cmd.Execute()
}
