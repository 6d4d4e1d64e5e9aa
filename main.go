package main

import "shiftboard.com/shiftboard/cmd"

func main() {
	cmd.Execute()
}
