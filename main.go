package main

import "report-compare/cmd"

func main() {
	cmd.Execute()
}
