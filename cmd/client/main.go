package main

import "folharh/cmd/client/cmd"

func main() {
	cmd.Execute()
}
