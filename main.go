package main

import "github.com/paycheck/budget-planner/cmd"

func main() {
	cmd.Execute()
}
