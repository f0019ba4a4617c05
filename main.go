package main

import "github.com/Omar96MJ/sanad-sub001/cmd"

func main() {
	cmd.Execute()
}
