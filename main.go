package main

import "github.com/spmuppar/twodthermocode/cmd"

func main() {
	cmd.Execute()
}
