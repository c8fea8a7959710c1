package main

import "weeklyreport/cmd"

func main() {
	cmd.Execute()
}
