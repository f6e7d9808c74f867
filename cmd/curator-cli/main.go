package main

import "curator/cmd/curator-cli/cmd"

func main() {
	cmd.Execute()
}
