package main

import "github/gaspayer/relay-service/cmd"

func main() {
	cmd.Execute()
}
