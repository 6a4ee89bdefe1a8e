package main

import "game-importer/cmd"

func main() {
	cmd.Execute()
}
