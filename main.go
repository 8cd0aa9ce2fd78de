package main

import "github.com/KaramelBytes/pokestat-cli/cmd"

func main() {
	cmd.Execute()
}
