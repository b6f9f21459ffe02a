package main

import "github.com/MeKo-Tech/paperforge/cmd/paperforge/cmd"

func main() {
	cmd.Execute()
}
