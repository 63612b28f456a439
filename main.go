package main

import "object-gateway/cmd"

func main() {
	cmd.Execute()
}
