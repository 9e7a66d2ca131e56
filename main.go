package main

import "github.com/filemanager-agent/filemanager-go/cmd"

func main() {
	cmd.Execute()
}
