package main

import "github.com/jfmyers9/dimms/cmd"

func main() {
	cmd.Execute()
}
