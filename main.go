package main

import "audio-converter/cmd"

func main() {
	cmd.Execute()
}
