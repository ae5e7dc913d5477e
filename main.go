package main

import (
	"ProgressiveBBS/cmd"
)

func main() {
	cmd.Execute()
}
