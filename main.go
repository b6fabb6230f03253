package main

import "github.com/seshstats/sesh-tools/cmd"

func main() {
	cmd.Execute()
}
