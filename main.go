package main

import "github.com/xvierd/smokefree-cli/cmd"

func main() {
	cmd.Execute()
}
