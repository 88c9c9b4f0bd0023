package main

import "github.com/jsphweid/smfnotes/cmd"

func main() {
	cmd.Execute()
}
