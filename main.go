package main

import "github.com/voxnote/memo-api/cmd"

func main() {
	cmd.Execute()
}
