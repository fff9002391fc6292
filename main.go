package main

import (
	"acc_recorder/internal/cmd"
)

func main() {
	cmd.Execute()
}
