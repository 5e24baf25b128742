package main

import "github.com/Xantino1997/flores/cmd"

func main() {
	cmd.Execute()
}
