package main

import "github.com/theirongolddev/dials/cmd"

func main() {
	cmd.Execute()
}
