package main

import "github.com/melodika/melodika-sync/cmd"

func main() {
	cmd.Execute()
}
