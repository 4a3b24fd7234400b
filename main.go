package main

import "github.com/iksnae/chat-history/cmd"

func main() {
	cmd.Execute()
}
