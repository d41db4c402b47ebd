package main

import "github.com/khanhnv2901/industrilock/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
