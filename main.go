package main

import "github.com/Ahmed-Tahan7/TestDiscord/cmd"

func main() {
	cmd.Execute()
}
