package main

import "shuttercheck/cmd"

func main() {
	cmd.Execute()
}
