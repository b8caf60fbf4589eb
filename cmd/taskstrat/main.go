package main

import "github.com/aritram1/go-task-strategies/cmd/taskstrat/cmd"

func main() {
	cmd.Execute()
}
