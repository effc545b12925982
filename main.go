package main

import "crescer-uniformes/cmd"

func main() {
	cmd.Execute()
}
