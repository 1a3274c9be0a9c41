package main

import "github.com/inovacc/dotr/cmd"

func main() {
	cmd.Execute()
}
