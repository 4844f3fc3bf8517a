package main

import (
	"mirro/cmd"
)

func main() {
	cmd.Execute()
}
