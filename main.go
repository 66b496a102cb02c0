package main

import "github.com/emmanueladavize43/Gemini-cupid/cmd"

func main() {
	cmd.Run()
}
